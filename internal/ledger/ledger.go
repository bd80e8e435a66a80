package ledger

import "github.com/shopspring/decimal"

// Snapshot финансовое состояние бронирования на момент операции
type Snapshot struct {
	PackagePrice  float64
	Deposit       float64
	TotalPayments float64
}

// Result новые итоги бронирования после операции
type Result struct {
	TotalPayments float64
	Remaining     float64
	// NegativeTotal итог платежей ушёл в минус: данные уже расходились до операции
	NegativeTotal bool
}

// Reconciliation результат сверки итога бронирования с его платежами
type Reconciliation struct {
	Recorded          float64 // totalPayments, сохранённый в бронировании
	Sum               float64 // сумма существующих платежей
	Drift             float64 // Recorded - Sum
	Consistent        bool
	NegativeTotal     bool
	ExpectedRemaining float64 // остаток, если итог пересчитать по платежам
}

// Remaining остаток к оплате: packagePrice - deposit - totalPayments
func Remaining(s Snapshot) float64 {
	return toFloat(remaining(s.PackagePrice, s.Deposit, dec(s.TotalPayments)))
}

// ApplyNewPayment проверяет и применяет новый платёж
func ApplyNewPayment(s Snapshot, amount float64) (Result, error) {
	a, ok := validAmount(amount)
	if !ok {
		return Result{}, &RuleError{Kind: KindInvalidAmount, Remaining: Remaining(s)}
	}

	total := dec(s.TotalPayments)
	current := remaining(s.PackagePrice, s.Deposit, total)

	if !current.IsPositive() {
		return Result{}, &RuleError{Kind: KindAlreadyFullyPaid, Remaining: toFloat(current)}
	}
	if a.GreaterThan(current) {
		return Result{}, &RuleError{Kind: KindExceedsRemaining, Remaining: toFloat(current)}
	}

	return result(s, total.Add(a)), nil
}

// ApplyAmendedAmount проверяет и применяет изменение суммы существующего платежа.
// Ограничение считается от price - deposit: старая сумма уже входит в totalPayments.
func ApplyAmendedAmount(s Snapshot, oldAmount, newAmount float64) (Result, error) {
	n, ok := validAmount(newAmount)
	if !ok {
		return Result{}, &RuleError{Kind: KindInvalidAmount, Remaining: Remaining(s), Amendment: true}
	}

	total := dec(s.TotalPayments)
	newTotal := total.Add(n.Sub(dec(oldAmount)))
	ceiling := dec(s.PackagePrice).Sub(dec(s.Deposit))

	if newTotal.GreaterThan(ceiling) {
		// остаток без учёта изменяемого платежа
		available := ceiling.Sub(total.Sub(dec(oldAmount)))
		return Result{}, &RuleError{Kind: KindExceedsRemaining, Remaining: toFloat(available), Amendment: true}
	}

	return result(s, newTotal), nil
}

// ApplyRemovedPayment вычитает удалённый платёж. Всегда успешно, итог не ограничивается нулём.
func ApplyRemovedPayment(s Snapshot, amount float64) Result {
	return result(s, dec(s.TotalPayments).Sub(dec(amount)))
}

// ApplyImportedDeposit учитывает депозит из импорта как первый платёж без проверки остатка
func ApplyImportedDeposit(s Snapshot, deposit float64) Result {
	d, ok := validAmount(deposit)
	if !ok {
		return result(s, dec(s.TotalPayments))
	}
	return result(s, dec(s.TotalPayments).Add(d))
}

// Reconcile сверяет сохранённый итог с суммой платежей
func Reconcile(s Snapshot, amounts []float64) Reconciliation {
	sum := zero
	for _, a := range amounts {
		sum = sum.Add(dec(a))
	}

	recorded := dec(s.TotalPayments)
	drift := recorded.Sub(sum)

	return Reconciliation{
		Recorded:          toFloat(recorded),
		Sum:               toFloat(sum),
		Drift:             toFloat(drift),
		Consistent:        drift.IsZero(),
		NegativeTotal:     recorded.IsNegative(),
		ExpectedRemaining: toFloat(remaining(s.PackagePrice, s.Deposit, sum)),
	}
}

func remaining(price, deposit float64, total decimal.Decimal) decimal.Decimal {
	return dec(price).Sub(dec(deposit)).Sub(total)
}

func result(s Snapshot, total decimal.Decimal) Result {
	return Result{
		TotalPayments: toFloat(total),
		Remaining:     toFloat(remaining(s.PackagePrice, s.Deposit, total)),
		NegativeTotal: total.IsNegative(),
	}
}

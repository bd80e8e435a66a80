package delete_batch

// MsgDeleted сообщение об успешном удалении пакета
const MsgDeleted = "Import batch deleted successfully"

// Request удаление пакета импорта
type Request struct {
	BatchID int64
}

// Response количество удалённых записей
type Response struct {
	Message         string
	DeletedBookings int64
	DeletedPayments int64
}

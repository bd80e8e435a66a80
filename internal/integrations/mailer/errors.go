package mailer

import "errors"

var (
	// ErrNotConfigured возвращается, когда SMTP хост не задан
	ErrNotConfigured = errors.New("mailer: smtp is not configured")

	// ErrRender возвращается при ошибке сборки письма
	ErrRender = errors.New("mailer: failed to render message")

	// ErrSend возвращается, когда SMTP сервер не принял письмо
	ErrSend = errors.New("mailer: failed to send message")
)

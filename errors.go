package res

import (
	"errors"
	"net/http"
	"os"
)

// Взведенный флаг Debug указывает, что описания ошибок возвращаются в ответе
// как есть. В противном случае вместо текста ошибки всегда отдается только
// стандартное описание статуса HTTP, сформированное на базе ее кода.
var Debug = false

// Error описывает возвращаемую по HTTP ошибку, для которой определен код
// статуса ответа.
type Error struct {
	Code    int    `json:"code" xml:"code,attr"`
	Message string `json:"message" xml:",chardata"`
}

// NewError возвращает ошибку с указанным кодом окончания запроса. Эту ошибку
// можно вернуть в качестве результата обработчика: статус ответа будет взят
// из нее.
func NewError(code int, message string) error {
	if code < 200 || code >= 600 {
		code = http.StatusInternalServerError
	}
	if message == "" {
		message = http.StatusText(code)
	}
	return &Error{Code: code, Message: message}
}

// Error возвращает строковое представление описания ошибки. Если текст ошибки
// не задан или флаг Debug не взведен, то возвращается описание статуса для
// данного кода.
func (e *Error) Error() string {
	if e.Message == "" || !Debug {
		if e.Code == 0 {
			return http.StatusText(http.StatusInternalServerError)
		}
		return http.StatusText(e.Code)
	}
	return e.Message
}

// Эти ошибки обрабатываются при передаче их в метод Context.Send и
// устанавливают соответствующий статус ответа.
//
// Кроме них проверяется, что ошибка отвечает на os.IsNotExist (в этом случае
// статус станет 404) или os.IsPermission (статус 403). Все остальные ошибки
// устанавливают статус 500.
var (
	ErrDataAlreadySent       = errors.New("data already sent")
	ErrBadRequest            = errors.New("bad request")              // 400
	ErrUnauthorized          = errors.New("unauthorized")             // 401
	ErrForbidden             = errors.New("forbidden")                // 403
	ErrNotFound              = errors.New("not found")                // 404
	ErrMethodNotAllowed      = errors.New("method not allowed")       // 405
	ErrLengthRequired        = errors.New("length required")          // 411
	ErrRequestEntityTooLarge = errors.New("request entity too large") // 413
	ErrUnsupportedMediaType  = errors.New("unsupported media type")   // 415
	ErrInternalServerError   = errors.New("internal server error")    // 500
	ErrNotImplemented        = errors.New("not implemented")          // 501
	ErrServiceUnavailable    = errors.New("service unavailable")      // 503
)

// ErrorStatus возвращает код статуса HTTP, соответствующий ошибке.
func ErrorStatus(err error) int {
	switch err {
	case nil:
		return http.StatusOK
	case ErrBadRequest:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrNotFound:
		return http.StatusNotFound
	case ErrMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrLengthRequired:
		return http.StatusLengthRequired
	case ErrRequestEntityTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case ErrNotImplemented:
		return http.StatusNotImplemented
	case ErrServiceUnavailable:
		return http.StatusServiceUnavailable
	}
	var httpError *Error
	switch {
	case errors.As(err, &httpError):
		if httpError.Code >= 200 && httpError.Code < 600 {
			return httpError.Code
		}
	case os.IsNotExist(err):
		return http.StatusNotFound
	case os.IsPermission(err):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// setErrorStatus устанавливает статус ответа в зависимости от ошибки и ее
// типа, если статус еще не был задан обработчиком.
func (c *Context) setErrorStatus(err error) {
	if err == nil || c.sended || c.status != 0 {
		return
	}
	c.status = ErrorStatus(err)
}

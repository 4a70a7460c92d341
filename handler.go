package res

import (
	"fmt"
	"net/http"
	"net/url"
)

// Handler является любая функция, которая принимает Context. Если в результате
// ее выполнения возвращается ошибка и ответ сервера еще не отдавался, то эта
// ошибка будет отдана в качестве ответа, а ее код станет статусом ответа.
//
// В частности, если ошибка соответствует os.IsNotExist, то вернется 404
// ошибка, а если os.IsPermission, то 403.
type Handler func(*Context) error

// ServeHTTP поддерживает интерфейс http.Handler, что позволяет использовать
// Handler с любыми совместимыми с http.Handler библиотеками.
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := newContext(w, r)
	if err := h(c); err != nil {
		c.Send(err) // пытаемся отослать ошибку, если еще ничего не отдавали
	} else if !c.sended {
		c.Send(nil) // пустой ответ, если обработчик ничего не отдал
	}
	c.close()
}

// handler приводит разные виды обработчиков к типу Handler. Поддерживаются
// Handler, func(*Context) error, http.Handler и http.HandlerFunc.
func handler(handlr interface{}) Handler {
	switch h := handlr.(type) {
	case Handler:
		return h
	case func(*Context) error:
		return Handler(h)
	case http.HandlerFunc:
		return func(c *Context) error {
			c.sended = true // мы не управляем отдачей содержимого ответа
			// стандартные обработчики не могут получить доступ к именованным
			// параметрам пути, поэтому добавляем их в параметры URL-запроса
			if len(c.Params) > 0 {
				urlQuery := make(url.Values, len(c.Params))
				for _, param := range c.Params {
					urlQuery.Add(param.Key, param.Value)
				}
				p := urlQuery.Encode()
				if c.Request.URL.RawQuery != "" {
					p += "&" + c.Request.URL.RawQuery
				}
				c.Request.URL.RawQuery = p
			}
			h(c, c.Request)
			return nil
		}
	case http.Handler: // сводим задачу к предыдущей
		return handler(http.HandlerFunc(h.ServeHTTP))
	default: // не поддерживаемый тип обработчика
		panic(fmt.Errorf("unsupported handler type %T", handlr))
	}
}

// Handlers объединяет несколько обработчиков в последовательную цепочку:
// выполнение прерывается на первом обработчике, вернувшем ошибку.
func Handlers(handlers ...interface{}) Handler {
	list := make([]Handler, len(handlers))
	for i, h := range handlers {
		list[i] = handler(h)
	}
	return func(c *Context) error {
		for _, h := range list {
			if err := h(c); err != nil {
				return err
			}
		}
		return nil
	}
}

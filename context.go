package res

import (
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
)

// Context содержит контекстную информацию HTTP-запроса и методы формирования
// ответа на него. Т.к. http.Request импортируется в Context напрямую, то можно
// использовать все его свойства и методы, как родные свойства и методы самого
// контекста.
//
// Context скрывает http.ResponseWriter от прямого использования и, вместо
// этого, предоставляет свои методы для формирования ответа.
//
// Для кодирования строк, ошибок и объектов используется кодировщик, заданный
// глобальной переменной Encoder (по умолчанию JSON), если не установлено
// другого при инициализации ServeMux.
type Context struct {
	*http.Request        // HTTP-запрос в разобранном виде
	Params        Params // именованные параметры из пути запроса
	ContentType   string // тип информации в ответе

	response http.ResponseWriter         // интерфейс для публикации ответа на запрос
	status   int                         // код HTTP-ответа
	sended   bool                        // флаг, что отдача ответа уже начата
	urlQuery url.Values                  // разобранные параметры запроса в URL (кеш)
	data     map[interface{}]interface{} // пользовательские данные
	coder    Coder                       // кодировщик ответов и разборщик запросов
}

// newContext возвращает новый инициализированный контекст из пула контекстов.
func newContext(w http.ResponseWriter, r *http.Request) *Context {
	c := contexts.Get().(*Context)
	// очищаем его от возможных старых данных
	c.Request = r
	c.Params = nil
	c.ContentType = ""
	c.response = w
	c.status = 0
	c.sended = false
	c.urlQuery = nil
	c.data = nil
	c.coder = Encoder
	return c
}

// close возвращает контекст в пул для дальнейшего использования. Вызывается
// автоматически после того, как контекст перестает использоваться.
func (c *Context) close() {
	contexts.Put(c)
}

// Header возвращает HTTP-заголовки ответа.
func (c *Context) Header() http.Header {
	return c.response.Header()
}

// Write отдает данные из параметра в качестве ответа сервера. Автоматически
// устанавливает статус ответа в http.StatusOK, если не было указано другого
// статуса. Если не был установлен заголовок Content-Type, то тип информации
// определяется по первым байтам данных.
func (c *Context) Write(data []byte) (int, error) {
	if !c.sended {
		if c.Header().Get("Content-Type") == "" {
			c.SetHeader("Content-Type", http.DetectContentType(data))
		}
		c.WriteHeader(c.status)
	}
	return c.response.Write(data)
}

// WriteHeader записывает заголовок ответа. После его вызова изменение статуса
// и заголовков ответа уже не поддерживается.
func (c *Context) WriteHeader(code int) {
	c.status = code
	if c.status == 0 {
		c.status = http.StatusOK
	} else if c.status < 100 || c.status >= 600 {
		c.status = http.StatusInternalServerError
	}
	c.sended = true
	c.response.WriteHeader(c.status)
}

// Flush отдает накопленный буфер с ответом, если поддерживается. Метод
// срабатывает только, если хоть какая-то часть данных уже передана.
func (c *Context) Flush() {
	if flusher, ok := c.response.(http.Flusher); ok && c.sended {
		flusher.Flush()
	}
}

// Status устанавливает код HTTP-ответа, который будет отправлен сервером.
// Вызов данного метода не приводит к немедленной отправке ответа.
//
// Метод возвращает ссылку на основной контекст, чтобы можно было использовать
// его в одной последовательности команд: например, сразу установить код ответа
// и тут же опубликовать данные.
func (c *Context) Status(code int) *Context {
	if !c.sended && code >= 200 && code < 600 {
		c.status = code
	}
	return c
}

// Code возвращает код HTTP-ответа, установленный на данный момент. Если не
// было задано никакого кода, но отдача ответа уже начата, то возвращается
// http.StatusOK.
func (c *Context) Code() int {
	if c.status == 0 && c.sended {
		return http.StatusOK
	}
	return c.status
}

// SetHeader устанавливает новое значение для указанного HTTP-заголовка ответа.
// Если передаваемое значение заголовка пустое, то данный заголовок будет
// удален.
//
// Если устанавливается заголовок Content-Type, то соответствующее свойство
// контекста тоже принимает это же значение. Заголовок Content-Length
// устанавливается только в том случае, если ответ не сжимается.
func (c *Context) SetHeader(key, value string) *Context {
	if c.sended { // нельзя изменить заголовок после начала отдачи ответа
		return c
	}
	switch key {
	case "Content-Type":
		c.ContentType = value
	case "Content-Length":
		if c.Header().Get("Content-Encoding") != "" {
			value = "" // не устанавливаем длину, если ответ сжимается
		}
	}
	if value == "" {
		c.response.Header().Del(key)
	} else {
		c.response.Header().Set(key, value)
	}
	return c
}

// Parse декодирует содержимое запроса в объект с помощью текущего кодировщика.
// Для кодировщика по умолчанию возвращает ошибку, если данные не соответствуют
// формату JSON или превышают допустимый размер.
func (c *Context) Parse(data interface{}) error {
	return c.coder.Bind(c, data)
}

// Param возвращает значение именованного параметра пути. Если параметр с таким
// именем не найден, то возвращается значение параметра из URL-запроса с тем же
// именем.
func (c *Context) Param(key string) string {
	if value := c.Params.Get(key); value != "" {
		return value
	}
	if c.urlQuery == nil {
		c.urlQuery = c.Request.URL.Query()
	}
	return c.urlQuery.Get(key)
}

// Data возвращает пользовательские данные, сохраненные в контексте запроса с
// указанным ключом.
func (c *Context) Data(key interface{}) interface{} {
	if c.data == nil {
		return nil
	}
	return c.data[key]
}

// SetData сохраняет пользовательские данные в контексте запроса с указанным
// ключом. Обычно так передают данные между несколькими обработчиками.
//
// Рекомендуется в качестве ключа использовать значение какого-нибудь
// приватного типа: это гарантированно защитит от случайного затирания данных
// другими обработчиками. Но строки тоже поддерживаются.
func (c *Context) SetData(key, value interface{}) {
	if c.data == nil {
		c.data = make(map[interface{}]interface{})
	}
	c.data[key] = value
}

// Error возвращает ошибку с указанным кодом окончания запроса. Является просто
// удобным способом сформировать Error, не импортируя пакет http.
func (c *Context) Error(code int, message string) error {
	return NewError(code, message)
}

// Send публикует переданные в параметре данные в качестве ответа. Если
// Context.ContentType не указан, то тип данных будет определен автоматически.
//
// В зависимости от типа передаваемых данных ответ формируется по-разному:
// бинарные данные ([]byte) и io.Reader отдаются как есть, без какого-либо
// изменения (io.ReadCloser будет автоматически закрыт); ошибки устанавливают
// соответствующий им статус ответа; строки, ошибки и все остальные типы
// отдаются через кодировщик (по умолчанию JSON).
//
// Вызов данного метода сразу инициирует отдачу ответа, поэтому вызвать его
// можно только один раз: при повторном вызове будет возвращена ошибка
// ErrDataAlreadySent.
func (c *Context) Send(data interface{}) error {
	if c.sended {
		return ErrDataAlreadySent
	}
	if c.ContentType != "" {
		c.SetHeader("Content-Type", c.ContentType)
	}
	switch d := data.(type) {
	case nil: // нечего отдавать
		if c.status == 0 {
			c.status = http.StatusNoContent
			c.WriteHeader(c.status)
			return nil
		}
		if c.status >= 400 {
			// если статус соответствует ошибке, то формируем текст с ее описанием
			return c.coder.Encode(c, &Error{c.status, http.StatusText(c.status)})
		}
		c.WriteHeader(c.status)
		return nil
	case error:
		c.setErrorStatus(d)
		return c.coder.Encode(c, &Error{c.status, d.Error()})
	case string: // строки тоже возвращаем в виде специального объекта
		if c.status == 0 {
			c.status = http.StatusOK
		}
		return c.coder.Encode(c, &Error{c.status, d})
	case []byte: // уже готовый к отдаче набор данных
		c.SetHeader("Content-Length", strconv.Itoa(len(d)))
		_, err := c.Write(d)
		return err
	case io.Reader: // поток данных отдаем как есть
		if seeker, ok := d.(io.Seeker); ok {
			// вычисляем размер данных и записываем его в заголовок
			size, err := seeker.Seek(0, io.SeekEnd)
			if err != nil {
				return err
			}
			if _, err = seeker.Seek(0, io.SeekStart); err != nil {
				return err
			}
			c.SetHeader("Content-Length", strconv.FormatInt(size, 10))
		}
		_, err := io.Copy(c, d)
		if closer, ok := d.(io.Closer); ok {
			closer.Close() // закрываем по окончании, раз поддерживается
		}
		return err
	default: // во всех остальных случаях данные отдает кодировщик
		return c.coder.Encode(c, data)
	}
}

// пул контекстов
var contexts = sync.Pool{New: func() interface{} { return new(Context) }}

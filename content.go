package res

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html/template"
	"io"
	"mime"

	"github.com/munnerz/goautoneg"
)

// contentTypes перечисляет типы, поддерживаемые ContentCoder при согласовании
// формата ответа по заголовку Accept.
var contentTypes = []string{
	"application/json",
	"text/html",
	"application/xml",
	"text/xml",
}

// viewer описывает страницу со встроенным просмотрщиком документа, отдаваемую
// для ответов с типом "application/pdf". В качестве данных ожидается адрес
// документа.
var viewer = template.Must(template.New("viewer").Parse(`<!DOCTYPE html>
<html>
<head><title>Document</title></head>
<body style="margin:0">
<embed src="{{.}}" type="application/pdf" style="width:100%;height:100vh"/>
</body>
</html>
`))

// ContentCoder формирует ответ в зависимости от типа, указанного в
// Context.ContentType:
//	- "text/html": данные отдаются как есть;
//	- "application/json": данные сериализуются в JSON;
//	- "application/pdf": отдается HTML-страница со встроенным просмотрщиком
//	  документа, адрес которого передан в качестве данных;
//	- "application/xml" и "text/xml": строки заворачиваются в тег <response>,
//	  остальные данные сериализуются в XML;
//	- все остальные типы отдаются как есть.
//
// Если тип ответа не задан обработчиком, то он выбирается из списка
// поддерживаемых на основании заголовка Accept запроса.
//
// Кодировщик устанавливается подменой глобального Encoder или в свойствах
// ServeMux:
//	res.Encoder = new(res.ContentCoder)
type ContentCoder struct {
	MaxBody int64 // максимально допустимый размер запроса
}

// Bind разбирает данные запроса в объект. В отличие от JSONCoder,
// поддерживаются запросы в форматах JSON, XML и HTTP-формы.
func (cc *ContentCoder) Bind(c *Context, obj interface{}) error {
	if cc.MaxBody > 0 && c.Request.ContentLength > cc.MaxBody {
		return ErrRequestEntityTooLarge
	}
	return Bind(c.Request, obj)
}

// Encode кодирует и отправляет ответ в формате, соответствующем типу ответа.
func (cc *ContentCoder) Encode(c *Context, obj interface{}) error {
	// строки и сообщения приходят от Context.Send завернутыми в *Error;
	// для успешных статусов разворачиваем их обратно в простой текст
	if e, ok := obj.(*Error); ok {
		if code := c.Code(); code > 0 && code < 400 {
			obj = e.Message
		}
	}
	contentType := c.ContentType
	if contentType == "" {
		// тип ответа не задан, согласуем его с запросом
		contentType = goautoneg.Negotiate(
			c.Request.Header.Get("Accept"), contentTypes)
		if contentType == "" {
			contentType = "application/json"
		}
	}
	mediatype, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediatype = contentType
	}
	switch mediatype {
	case "application/json":
		c.SetHeader("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(c)
		enc.SetIndent("", "\t")
		return enc.Encode(obj)
	case "application/pdf":
		// вместо самого документа отдается страница с его просмотрщиком
		c.SetHeader("Content-Type", "text/html; charset=utf-8")
		return viewer.Execute(c, obj)
	case "application/xml", "text/xml":
		c.SetHeader("Content-Type", mediatype+"; charset=utf-8")
		if _, err := io.WriteString(c, xml.Header); err != nil {
			return err
		}
		enc := xml.NewEncoder(c)
		response := xml.StartElement{Name: xml.Name{Local: "response"}}
		switch d := obj.(type) {
		case string: // строки заворачиваются в тег
			return enc.EncodeElement(d, response)
		case *Error:
			return enc.EncodeElement(d.Error(), response)
		default:
			return enc.Encode(obj)
		}
	case "text/html":
		fallthrough
	default: // данные отдаются как есть
		c.SetHeader("Content-Type", contentType)
		switch d := obj.(type) {
		case string:
			_, err := io.WriteString(c, d)
			return err
		case []byte:
			_, err := c.Write(d)
			return err
		case error:
			_, err := io.WriteString(c, d.Error())
			return err
		default:
			_, err := fmt.Fprint(c, obj)
			return err
		}
	}
}

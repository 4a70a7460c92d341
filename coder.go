package res

import (
	"encoding/json"
	"mime"
	"strings"
)

// JSON позволяет быстро описать данные в одноименном формате.
type JSON map[string]interface{}

// Coder описывает интерфейс кодировщика: он отвечает как за разбор запроса,
// так и за формирование ответа.
type Coder interface {
	Bind(*Context, interface{}) error
	Encode(*Context, interface{}) error
}

// Encoder задает кодировщик, используемый по умолчанию. Присвоение этой
// переменной другого значения целиком подменяет формат ответов для всех
// обработчиков, не задавших собственного кодировщика в ServeMux.
var Encoder Coder = &JSONCoder{MaxBody: 1 << 15, Indent: true}

// JSONCoder осуществляет разбор запроса и кодирование ответа в формате JSON.
type JSONCoder struct {
	MaxBody int64        // максимально допустимый размер запроса
	Indent  bool         // флаг форматированного вывода JSON
	Preview Preprocessor // необязательное преобразование данных перед отдачей
}

// NewJSONCoder возвращает новый инициализированный кодировщик формата JSON.
func NewJSONCoder(maxSize int64, indent bool) *JSONCoder {
	return &JSONCoder{MaxBody: maxSize, Indent: indent}
}

// Bind разбирает данные запроса в формате JSON и заполняет ими указанный в
// параметре объект.
//
// Если Content-Type запроса не соответствует "application/json", то
// возвращается ошибка ErrUnsupportedMediaType. Так же может возвращаться
// ошибка ErrLengthRequired, если не указана длина запроса,
// ErrRequestEntityTooLarge, если запрос превышает значение MaxBody, и
// ErrBadRequest, если не удалось разобрать запрос. Все эти ошибки
// поддерживаются методом Send и отдают соответствующий статус ответа.
func (j *JSONCoder) Bind(c *Context, obj interface{}) error {
	r := c.Request
	// разбираем заголовок с типом информации в запросе
	mediatype, params, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	charset, ok := params["charset"]
	if !ok {
		charset = "UTF-8"
	}
	// если запрос не является JSON, то возвращаем ошибку
	if mediatype != "application/json" || strings.ToUpper(charset) != "UTF-8" {
		return ErrUnsupportedMediaType
	}
	// если запрос превышает допустимый объем, то возвращаем ошибку
	if j.MaxBody > 0 {
		if r.ContentLength == 0 {
			return ErrLengthRequired
		} else if r.ContentLength > j.MaxBody {
			return ErrRequestEntityTooLarge
		}
	}
	if err := json.NewDecoder(r.Body).Decode(obj); err != nil {
		return ErrBadRequest
	}
	return nil
}

// Encode кодирует и отправляет ответ с содержимым obj в формате JSON.
func (j *JSONCoder) Encode(c *Context, obj interface{}) error {
	if c.ContentType == "" {
		c.SetHeader("Content-Type", "application/json; charset=utf-8")
	}
	if j.Preview != nil {
		obj = j.Preview(c, obj)
	}
	enc := json.NewEncoder(c)
	if j.Indent {
		enc.SetIndent("", "\t")
	}
	return enc.Encode(obj)
}

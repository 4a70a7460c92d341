// Package codex соответствует интерфейсу res.Coder и добавляет одновременную
// поддержку форматов MsgPack, CBOR, Binc и JSON.
package codex

import (
	"mime"
	"strings"

	"github.com/mdigger/res"
	"github.com/munnerz/goautoneg"
	"github.com/ugorji/go/codec"
)

var (
	hmsgpack = new(codec.MsgpackHandle)
	hcbor    = new(codec.CborHandle)
	hbinc    = new(codec.BincHandle)
	hjson    = new(codec.JsonHandle)
)

func init() {
	hjson.Canonical = true       // сортировать ключи в словаре
	hjson.Indent = -1            // отступ с табуляцией
	res.Encoder = Coder{1 << 15} // регистрируем при импорте
}

// mediatypes перечисляет поддерживаемые типы в порядке предпочтения.
var mediatypes = []string{
	"application/cbor",
	"application/msgpack",
	"application/x-msgpack",
	"application/binc",
	"application/x-binc",
	"application/json",
}

// Coder поддерживает декодирование запроса и отсылку ответа в форматах JSON,
// CBOR, MsgPack и Binc.
type Coder struct {
	MaxBody int64 // максимально допустимый размер запроса
}

// Bind разбирает содержимое запроса в формате MsgPack, CBOR, Binc или JSON и
// сериализует его содержимое в объект.
func (cdx Coder) Bind(c *res.Context, obj interface{}) error {
	r := c.Request
	// если запрос превышает допустимый объем, то возвращаем ошибку
	if cdx.MaxBody > 0 {
		if r.ContentLength == 0 {
			return res.ErrLengthRequired
		} else if r.ContentLength > cdx.MaxBody {
			return res.ErrRequestEntityTooLarge
		}
	}
	// разбираем заголовок с типом информации в запросе
	mediatype, params, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var h codec.Handle
	switch mediatype {
	case "application/json":
		charset, ok := params["charset"]
		if ok && strings.ToUpper(charset) != "UTF-8" {
			return res.ErrUnsupportedMediaType
		}
		h = hjson
	case "application/msgpack", "application/x-msgpack":
		h = hmsgpack
	case "application/cbor":
		h = hcbor
	case "application/binc", "application/x-binc":
		h = hbinc
	default:
		return res.ErrUnsupportedMediaType
	}
	if err := codec.NewDecoder(r.Body, h).Decode(obj); err != nil {
		return res.ErrBadRequest
	}
	return nil
}

// Encode кодирует и отправляет ответ с содержимым obj в формате MsgPack,
// CBOR, Binc или JSON, в зависимости от предпочтений, определяемых на
// основании заголовка Accept запроса.
func (Coder) Encode(c *res.Context, obj interface{}) error {
	mediatype := goautoneg.Negotiate(c.Request.Header.Get("Accept"), mediatypes)
	var h codec.Handle
	switch mediatype {
	case "application/msgpack", "application/x-msgpack":
		h = hmsgpack
	case "application/cbor":
		h = hcbor
	case "application/binc", "application/x-binc":
		h = hbinc
	default:
		h = hjson
		mediatype = "application/json; charset=utf-8"
	}
	c.SetHeader("Content-Type", mediatype)
	return codec.NewEncoder(c, h).Encode(obj)
}

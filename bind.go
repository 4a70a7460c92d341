package res

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Errors returned by the Bind function.
var (
	ErrUnsupportedCharset     = &Error{400, "unsupported charset"}
	ErrEmptyContentType       = &Error{400, "empty content type"}
	ErrUnsupportedContentType = &Error{400, "unsupported content type"}
	ErrUnsupportedHTTPMethod  = &Error{400, "unsupported http method"}
)

// Bind parses the request and populates the specified structure with the
// received data. Parsing of JSON, XML and HTTP forms is supported. For the
// HTTP form you can use the "form:" tag to specify the field name.
func Bind(r *http.Request, v interface{}) (err error) {
	switch r.Method {
	case "GET", "HEAD":
		err = bindForm(r.URL.Query(), v)
	case "POST", "PUT", "PATCH":
		mediatype, params, _ := mime.ParseMediaType(
			r.Header.Get("Content-Type"))
		charset, ok := params["charset"]
		if ok && strings.ToUpper(charset) != "UTF-8" {
			err = ErrUnsupportedCharset
			break
		}
		switch mediatype {
		case "application/json":
			err = json.NewDecoder(r.Body).Decode(v)
		case "application/xml", "text/xml":
			err = xml.NewDecoder(r.Body).Decode(v)
		case "application/x-www-form-urlencoded", "multipart/form-data":
			if err = r.ParseForm(); err == nil {
				err = bindForm(r.PostForm, v)
			}
		case "":
			err = ErrEmptyContentType
		default:
			err = ErrUnsupportedContentType
		}
	default:
		err = ErrUnsupportedHTTPMethod
	}
	return err
}

// bindForm populates the structure fields with the form values. The form name
// of a field is taken from the "form:" tag or derived from the field name by
// lowering its first letter.
func bindForm(data url.Values, v interface{}) error {
	typ := reflect.TypeOf(v).Elem()
	val := reflect.ValueOf(v).Elem()
	if typ.Kind() != reflect.Struct {
		return errors.New("binding element must be a struct")
	}
	for i := 0; i < typ.NumField(); i++ {
		typeField := typ.Field(i)
		structField := val.Field(i)
		if !structField.CanSet() {
			continue
		}
		inputFieldName := typeField.Tag.Get("form")
		if inputFieldName == "" {
			r, n := utf8.DecodeRuneInString(typeField.Name)
			inputFieldName = string(unicode.ToLower(r)) + typeField.Name[n:]
			// if the "form" tag is empty, embedded structures are parsed
			// with the same form data
			if structField.Kind() == reflect.Struct {
				err := bindForm(data, structField.Addr().Interface())
				if err != nil {
					return err
				}
				continue
			}
		}
		inputValue, exists := data[inputFieldName]
		if !exists {
			continue
		}
		if structField.Kind() == reflect.Slice && len(inputValue) > 0 {
			sliceOf := structField.Type().Elem().Kind()
			slice := reflect.MakeSlice(structField.Type(),
				len(inputValue), len(inputValue))
			for j := 0; j < len(inputValue); j++ {
				if err := setWithProperType(sliceOf,
					inputValue[j], slice.Index(j)); err != nil {
					return err
				}
			}
			structField.Set(slice)
		} else if err := setWithProperType(typeField.Type.Kind(),
			inputValue[0], structField); err != nil {
			return err
		}
	}
	return nil
}

func setWithProperType(kind reflect.Kind, value string,
	field reflect.Value) error {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64:
		return setIntField(value, field)
	case reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64:
		return setUintField(value, field)
	case reflect.Bool:
		return setBoolField(value, field)
	case reflect.Float32, reflect.Float64:
		return setFloatField(value, field)
	case reflect.String:
		field.SetString(value)
	default:
		return errors.New("unknown field type")
	}
	return nil
}

func setIntField(value string, field reflect.Value) error {
	if value == "" {
		value = "0"
	}
	intVal, err := strconv.ParseInt(value, 10, field.Type().Bits())
	if err == nil {
		field.SetInt(intVal)
	}
	return err
}

func setUintField(value string, field reflect.Value) error {
	if value == "" {
		value = "0"
	}
	uintVal, err := strconv.ParseUint(value, 10, field.Type().Bits())
	if err == nil {
		field.SetUint(uintVal)
	}
	return err
}

func setBoolField(value string, field reflect.Value) error {
	if value == "" {
		value = "false"
	}
	boolVal, err := strconv.ParseBool(value)
	if err == nil {
		field.SetBool(boolVal)
	}
	return err
}

func setFloatField(value string, field reflect.Value) error {
	if value == "" {
		value = "0.0"
	}
	floatVal, err := strconv.ParseFloat(value, field.Type().Bits())
	if err == nil {
		field.SetFloat(floatVal)
	}
	return err
}

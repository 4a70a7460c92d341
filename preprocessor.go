package res

import "net/http"

// Preprocessor позволяет изменить данные непосредственно перед их кодированием
// в ответ: например, завернуть их в стандартный "конверт" с кодом и статусом.
type Preprocessor func(c *Context, data interface{}) interface{}

// Response описывает "конверт" ответа, формируемый препроцессором Envelope.
type Response struct {
	Code    int         `json:"code" xml:"code,attr"`
	Status  string      `json:"status,omitempty" xml:"status,omitempty"`
	Success bool        `json:"success" xml:"success,attr"`
	Data    interface{} `json:"data,omitempty" xml:"data,omitempty"`
	Error   string      `json:"error,omitempty" xml:"error,omitempty"`
}

// Envelope является готовой реализацией Preprocessor и представляет любые
// отдаваемые данные в виде Response:
//	{
//	    "code": 200,
//	    "status": "OK",
//	    "success": true,
//	    "data": {
//	        ...
//	    }
//	}
func Envelope(c *Context, data interface{}) interface{} {
	code := c.Code()
	if code == 0 {
		code = http.StatusOK
	}
	resp := &Response{
		Code:   code,
		Status: http.StatusText(code),
	}
	switch data := data.(type) {
	case *Error:
		if code < 400 {
			// строки и сообщения передаются тем же типом, что и ошибки
			resp.Data = data.Message
			resp.Success = true
			break
		}
		resp.Error = data.Error()
	case error:
		resp.Error = data.Error()
	case nil:
		resp.Success = code < 400
	default:
		resp.Data = data
		resp.Success = true
	}
	return resp
}

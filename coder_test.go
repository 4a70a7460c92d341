package res

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSONCoderBind(t *testing.T) {
	data, err := json.Marshal(JSON{"test": true})
	if err != nil {
		t.Fatal(err)
	}

	coder := NewJSONCoder(1<<10, false)
	newRequest := func(body []byte) *Context {
		r := httptest.NewRequest("POST", "/", bytes.NewReader(body))
		return newContext(httptest.NewRecorder(), r)
	}

	c := newRequest(data)
	var test = make(JSON)
	if err := coder.Bind(c, &test); err != ErrUnsupportedMediaType {
		t.Error("empty content type must be rejected:", err)
	}

	c = newRequest(data)
	c.Request.Header.Set("Content-Type", "application/json")
	if err := coder.Bind(c, &test); err != nil {
		t.Error(err)
	}
	if test["test"] != true {
		t.Error("bad parsed data:", test)
	}

	c = newRequest(data)
	c.Request.Header.Set("Content-Type", `application/json; charset="windows-1251"`)
	if err := coder.Bind(c, &test); err != ErrUnsupportedMediaType {
		t.Error("unsupported charset must be rejected:", err)
	}

	c = newRequest(data)
	c.Request.Header.Set("Content-Type", "application/msgpack")
	if err := coder.Bind(c, &test); err != ErrUnsupportedMediaType {
		t.Error("unsupported content type must be rejected:", err)
	}

	c = newRequest(bytes.Repeat([]byte("0"), 2<<10))
	c.Request.Header.Set("Content-Type", "application/json")
	if err := coder.Bind(c, &test); err != ErrRequestEntityTooLarge {
		t.Error("too large request must be rejected:", err)
	}

	c = newRequest(nil)
	c.Request.Header.Set("Content-Type", "application/json")
	if err := coder.Bind(c, &test); err != ErrLengthRequired {
		t.Error("empty request must be rejected:", err)
	}

	c = newRequest([]byte("{bad json"))
	c.Request.Header.Set("Content-Type", "application/json")
	if err := coder.Bind(c, &test); err != ErrBadRequest {
		t.Error("bad request data must be rejected:", err)
	}
}

func TestJSONCoderEncode(t *testing.T) {
	c, w := testContext("GET", "/", "")
	c.coder = NewJSONCoder(0, false)
	if err := c.Send(JSON{"test": 1}); err != nil {
		t.Fatal(err)
	}
	if w.Body.String() != `{"test":1}`+"\n" {
		t.Error("bad encoded data:", w.Body.String())
	}
}

func TestEnvelope(t *testing.T) {
	c, w := testContext("GET", "/", "")
	c.coder = &JSONCoder{Indent: false, Preview: Envelope}
	if err := c.Send(JSON{"test": 1}); err != nil {
		t.Fatal(err)
	}
	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != 200 || !resp.Success || resp.Status != "OK" {
		t.Errorf("bad envelope: %+v", resp)
	}

	c, w = testContext("GET", "/", "")
	c.coder = &JSONCoder{Preview: Envelope}
	if err := c.Send(ErrNotFound); err != nil {
		t.Fatal(err)
	}
	resp = Response{}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != 404 || resp.Success || resp.Error == "" {
		t.Errorf("bad error envelope: %+v", resp)
	}

	c, w = testContext("GET", "/", "")
	c.coder = &JSONCoder{Preview: Envelope}
	if err := c.Send("hello"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(w.Body.String(), `"data":"hello"`) {
		t.Error("message must become envelope data:", w.Body.String())
	}
}

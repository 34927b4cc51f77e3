package web

import (
	"encoding/json"
	"html"
	"io"
)

func writeEscaped(w io.Writer, text string) error {
	_, err := io.WriteString(w, html.EscapeString(text))
	return err
}

func writeJSString(w io.Writer, value string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

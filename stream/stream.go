// Package stream provides utils to deal with body streams.
package stream

import (
	"errors"
	"io"
	"unicode/utf8"

	"github.com/mrsarm/echo-contrib-rest/errs"
)

// ReadBody reads the body of an HTTP response (or any reader) as a
// string. The content has to be encoded in UTF-8, otherwise an
// unexpected error is returned.
//
//	res, err := http.Get("http://example.com/")
//	if err != nil {
//	    return err
//	}
//	defer res.Body.Close()
//	body, err := stream.ReadBody(res.Body)
func ReadBody(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", errs.Unexpected(err)
	}
	if !utf8.Valid(b) {
		return "", errs.Unexpected(errors.New("body is not valid UTF-8"))
	}
	return string(b), nil
}

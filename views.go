package porter

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// BeanToMap returns every readable property of bean that holds a non-nil
// value, keyed by property name. A name declared on several embedding
// levels keeps the value of the last level walked.
func BeanToMap(bean any) (map[string]any, error) {
	start := time.Now()
	result := make(map[string]any)
	err := walk(bean, false, func(name string, value any) error {
		result[name] = value
		return nil
	})
	emitViewComplete(context.Background(), viewMap, reflect.TypeOf(bean), len(result), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BeanToMapAll is BeanToMap without the nil filter: nil properties are
// present with the empty string as value.
func BeanToMapAll(bean any) (map[string]any, error) {
	start := time.Now()
	result := make(map[string]any)
	err := walk(bean, true, func(name string, value any) error {
		if value == nil {
			value = ""
		}
		result[name] = value
		return nil
	})
	emitViewComplete(context.Background(), viewMapAll, reflect.TypeOf(bean), len(result), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BeanToQueryString renders the readable properties of bean as
// name=value pairs joined by "&", in walk order.
//
// Booleans appear only when true. time.Time values are formatted with the
// date layout. Everything else is rendered with fmt.Sprint. Names and
// values are encoded with the charset and then percent-encoded.
func BeanToQueryString(bean any, opts ...QueryOption) (string, error) {
	cfg := newQueryConfig(opts)

	start := time.Now()
	count := 0
	s, err := func() (string, error) {
		enc, err := lookupCharset(cfg.charset)
		if err != nil {
			return "", err
		}

		var b strings.Builder
		err = walk(bean, false, func(name string, value any) error {
			text, ok := queryValue(value, cfg.dateLayout)
			if !ok {
				return nil
			}
			key, err := escape(name, enc, cfg.charset)
			if err != nil {
				return err
			}
			val, err := escape(text, enc, cfg.charset)
			if err != nil {
				return err
			}
			if count > 0 {
				b.WriteByte('&')
			}
			b.WriteString(key)
			b.WriteByte('=')
			b.WriteString(val)
			count++
			return nil
		})
		return b.String(), err
	}()
	emitViewComplete(context.Background(), viewQuery, reflect.TypeOf(bean), count, time.Since(start), err)
	if err != nil {
		return "", err
	}
	return s, nil
}

// queryValue renders a property value for the query view. ok is false
// when the property is left out.
func queryValue(value any, layout string) (string, bool) {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return "", false
	}

	switch v := rv.Interface().(type) {
	case bool:
		return "true", v
	case time.Time:
		return v.Format(layout), true
	}
	if rv.Kind() == reflect.Bool {
		return "true", rv.Bool()
	}
	return fmt.Sprint(rv.Interface()), true
}

// lookupCharset resolves an IANA charset name. A nil encoding stands for
// UTF-8, which needs no transcoding.
func lookupCharset(name string) (encoding.Encoding, error) {
	if strings.EqualFold(name, DefaultCharset) || strings.EqualFold(name, "utf8") {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, &EncodingError{Charset: name, Cause: err}
	}
	if enc == nil {
		return nil, &EncodingError{Charset: name}
	}
	return enc, nil
}

func escape(s string, enc encoding.Encoding, charset string) (string, error) {
	if enc != nil {
		encoded, err := enc.NewEncoder().String(s)
		if err != nil {
			return "", &EncodingError{Charset: charset, Cause: err}
		}
		s = encoded
	}
	return url.QueryEscape(s), nil
}

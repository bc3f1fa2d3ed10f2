// Copyright 2026 Safa Toum. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

type settings struct {
	Verbose   bool   `doc:"verbose assembly output"`
	SourceExt string `doc:"default source file extension"`
}

func newSettings() *settings {
	return &settings{
		Verbose:   false,
		SourceExt: ".asm",
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	settingsType := reflect.TypeOf(settings{})
	settingsFields = make([]settingsField, settingsType.NumField())
	for i := 0; i < len(settingsFields); i++ {
		f := settingsType.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		v := value.Field(i)
		var s string
		switch f.kind {
		case reflect.String:
			s = fmt.Sprintf("    %-12s \"%s\"", f.name, v.String())
		default:
			s = fmt.Sprintf("    %-12s %v", f.name, v)
		}
		fmt.Fprintf(w, "%-24s (%s)\n", s, f.doc)
	}
}

// Set parses a value string according to the named field's kind and
// stores it.
func (s *settings) Set(key, value string) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return err
	}

	var v reflect.Value
	switch f.kind {
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.New("invalid boolean value")
		}
		v = reflect.ValueOf(b)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.New("invalid integer value")
		}
		v = reflect.ValueOf(n)
	case reflect.String:
		v = reflect.ValueOf(value)
	default:
		return errors.New("invalid type")
	}

	reflect.ValueOf(s).Elem().Field(f.index).Set(v.Convert(f.typ))
	return nil
}

package utils

import (
	"reflect"
	"strings"
)

// NormalizeDTO trims every settable string field of a pointer-to-struct DTO,
// descending into embedded structs.
func NormalizeDTO(dto any) {
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return
	}
	trimStruct(v.Elem())
}

// NormalizePtrDTO trims the non-nil *string fields of a pointer-to-struct DTO.
// Nil pointers stay nil so they are still skipped by PatchFields.
func NormalizePtrDTO(dto any) {
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return
	}
	s := v.Elem()
	if s.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if f.Kind() != reflect.Ptr || f.IsNil() {
			continue
		}
		if ef := f.Elem(); ef.Kind() == reflect.String && ef.CanSet() {
			ef.SetString(strings.TrimSpace(ef.String()))
		}
	}
}

func trimStruct(s reflect.Value) {
	if s.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		switch {
		case f.Kind() == reflect.String && f.CanSet():
			f.SetString(strings.TrimSpace(f.String()))
		case f.Kind() == reflect.Struct && s.Type().Field(i).Anonymous:
			trimStruct(f)
		}
	}
}

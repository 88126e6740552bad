package models

import (
	"database/sql/driver"
	"reflect"
	"testing"
)

func TestStringSlice_Value(t *testing.T) {
	tests := []struct {
		name    string
		s       StringSlice
		wantVal driver.Value
	}{
		{name: "nil slice", s: nil, wantVal: "[]"},
		{name: "empty slice", s: StringSlice{}, wantVal: "[]"},
		{name: "one element", s: StringSlice{"apple"}, wantVal: `["apple"]`},
		{name: "element with comma", s: StringSlice{"a,b", "c"}, wantVal: `["a,b","c"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.s.Value()
			if err != nil {
				t.Fatalf("StringSlice.Value() error = %v", err)
			}
			if got != tt.wantVal {
				t.Errorf("StringSlice.Value() = %v, want %v", got, tt.wantVal)
			}
		})
	}
}

func TestStringSlice_Scan(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    StringSlice
		wantErr bool
	}{
		{name: "nil", value: nil, want: StringSlice{}},
		{name: "bytes", value: []byte(`["x","y"]`), want: StringSlice{"x", "y"}},
		{name: "string", value: `["x"]`, want: StringSlice{"x"}},
		{name: "json null", value: "null", want: StringSlice{}},
		{name: "empty string", value: "", want: StringSlice{}},
		{name: "invalid json", value: "[x", wantErr: true},
		{name: "unsupported type", value: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s StringSlice
			err := s.Scan(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("StringSlice.Scan() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(s, tt.want) {
				t.Errorf("StringSlice.Scan() = %#v, want %#v", s, tt.want)
			}
		})
	}
}

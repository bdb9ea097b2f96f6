package utils

import (
	"reflect"
	"testing"
)

func TestNormalizeIP(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain_ipv4", input: "192.168.1.10", want: "192.168.1.10"},
		{name: "ipv4_with_port", input: "192.168.1.10:8080", want: "192.168.1.10"},
		{name: "forwarded_list", input: "10.0.0.1, 10.0.0.2", want: "10.0.0.1"},
		{name: "mapped_ipv6", input: "::ffff:192.0.2.1", want: "192.0.2.1"},
		{name: "ipv6_with_port", input: "[2001:db8::1]:443", want: "2001:db8::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeIP(tt.input); got != tt.want {
				t.Errorf("NormalizeIP() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseUintList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []uint
	}{
		{name: "empty", input: "", want: []uint{}},
		{name: "simple", input: "1,2,3", want: []uint{1, 2, 3}},
		{name: "spaces_and_gaps", input: " 1, 2,,3 ", want: []uint{1, 2, 3}},
		{name: "non_numeric_skipped", input: "1,x,3", want: []uint{1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseUintList(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseUintList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToRelativeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "already_relative", input: "/api/upload/a.png", want: "/api/upload/a.png"},
		{name: "http_absolute", input: "http://127.0.0.1/api/upload/a.png", want: "/api/upload/a.png"},
		{name: "https_with_port", input: "https://example.com:8443/api/upload/a.png", want: "/api/upload/a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRelativeURL(tt.input); got != tt.want {
				t.Errorf("ToRelativeURL() = %v, want %v", got, tt.want)
			}
		})
	}
}

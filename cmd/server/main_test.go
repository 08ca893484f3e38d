package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwaggerHost(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "api.example.com", want: "api.example.com"},
		{raw: "http://localhost:5000", want: "localhost:5000"},
		{raw: "https://api.example.com", want: "api.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, swaggerHost(tt.raw))
		})
	}
}

// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"testing"
)

func TestMask(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "OAuth authorization header",
			input:    `OAuth oauth_consumer_key="ck123", oauth_token="tok456", oauth_signature="sig%3D"`,
			expected: `OAuth oauth_consumer_key="***", oauth_token="***", oauth_signature="***"`,
		},
		{
			name:     "api key in query string",
			input:    "/v2/blog/staff.tumblr.com/info?api_key=abcdef&limit=2",
			expected: "/v2/blog/staff.tumblr.com/info?api_key=***&limit=2",
		},
		{
			name:     "console auth URL",
			input:    "https://api.tumblr.com/console/auth?consumer_key=ck&consumer_secret=cs",
			expected: "https://api.tumblr.com/console/auth?consumer_key=ck&consumer_secret=***",
		},
		{
			name:     "credentials JSON",
			input:    `{"consumer_key": "ck", "token_secret": "ts"}`,
			expected: `{"consumer_key": "***", "token_secret": "***"}`,
		},
		{
			name:     "nothing to mask",
			input:    "GET /v2/user/info",
			expected: "GET /v2/user/info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Mask(tt.input)
			if result != tt.expected {
				t.Errorf("Mask() = %v, want %v", result, tt.expected)
			}
		})
	}
}

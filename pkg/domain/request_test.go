package domain_test

import (
	"testing"

	"github.com/aretw0/chaingen/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRequest(t *testing.T) {
	req := domain.DefaultRequest()
	assert.Equal(t, "demo", req.ProjectName)
	assert.Equal(t, 150, req.ChainLength)
	assert.Equal(t, 1000, req.RecursionLimit)
	assert.NoError(t, req.Validate(domain.PolicyStrict))
}

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.Request
		policy  domain.Policy
		wantErr error
	}{
		{"empty name lenient", domain.Request{ProjectName: "", ChainLength: 3, RecursionLimit: 10}, domain.PolicyLenient, domain.ErrInvalidProjectName},
		{"dot-dot name", domain.Request{ProjectName: "..", ChainLength: 3, RecursionLimit: 10}, domain.PolicyLenient, domain.ErrInvalidProjectName},
		{"nested name", domain.Request{ProjectName: "a/b", ChainLength: 3, RecursionLimit: 10}, domain.PolicyLenient, domain.ErrInvalidProjectName},
		{"zero chain lenient", domain.Request{ProjectName: "demo", ChainLength: 0, RecursionLimit: 10}, domain.PolicyLenient, nil},
		{"negative chain lenient", domain.Request{ProjectName: "demo", ChainLength: -1, RecursionLimit: 10}, domain.PolicyLenient, nil},
		{"long chain lenient", domain.Request{ProjectName: "demo", ChainLength: 1500, RecursionLimit: 10}, domain.PolicyLenient, nil},
		{"zero limit lenient", domain.Request{ProjectName: "demo", ChainLength: 3, RecursionLimit: 0}, domain.PolicyLenient, nil},
		{"zero chain strict", domain.Request{ProjectName: "demo", ChainLength: 0, RecursionLimit: 10}, domain.PolicyStrict, domain.ErrChainTooShort},
		{"long chain strict", domain.Request{ProjectName: "demo", ChainLength: 1000, RecursionLimit: 10}, domain.PolicyStrict, domain.ErrChainTooLong},
		{"zero limit strict", domain.Request{ProjectName: "demo", ChainLength: 3, RecursionLimit: 0}, domain.PolicyStrict, domain.ErrInvalidRecursionLimit},
		{"boundary strict", domain.Request{ProjectName: "demo", ChainLength: 999, RecursionLimit: 1}, domain.PolicyStrict, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate(tt.policy)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := domain.ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, domain.PolicyLenient, p)

	p, err = domain.ParsePolicy(" Strict ")
	require.NoError(t, err)
	assert.Equal(t, domain.PolicyStrict, p)

	_, err = domain.ParsePolicy("paranoid")
	assert.Error(t, err)
}

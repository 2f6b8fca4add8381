package utils_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SergeyBogomolovv/exchange-ledger/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteValidationError(t *testing.T) {
	type input struct {
		Amount decimal.Decimal `validate:"gt=0"`
		Name   string          `validate:"required"`
	}

	testCases := []struct {
		name     string
		err      func() error
		wantBody string
	}{
		{
			name: "validator fields",
			err: func() error {
				return utils.NewValidator().Struct(input{Amount: decimal.NewFromInt(-1)})
			},
			wantBody: `{"message":"invalid request","fields":{"Amount":"gt","Name":"required"}}`,
		},
		{
			name:     "plain error",
			err:      func() error { return errors.New("unexpected EOF") },
			wantBody: `{"message":"unexpected EOF","fields":{}}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			require.NoError(t, utils.WriteValidationError(rr, tc.err()))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.JSONEq(t, tc.wantBody, rr.Body.String())
		})
	}
}

func TestDecodeBody_RejectsUnknownFields(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","extra":1}`))
	assert.Error(t, utils.DecodeBody(req, &v))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`))
	require.NoError(t, utils.DecodeBody(req, &v))
	assert.Equal(t, "a", v.Name)
}

func TestNewValidator_Decimal(t *testing.T) {
	type input struct {
		Rate decimal.Decimal `validate:"gt=0"`
	}
	v := utils.NewValidator()

	assert.NoError(t, v.Struct(input{Rate: decimal.RequireFromString("0.0001")}))
	assert.Error(t, v.Struct(input{Rate: decimal.Zero}))
}

func TestNewValidator_DecimalPrecision(t *testing.T) {
	type input struct {
		Amount decimal.Decimal `validate:"gt=0,decimal=20_8"`
	}
	v := utils.NewValidator()

	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{name: "integer", amount: "1000"},
		{name: "eight decimals", amount: "0.00000001"},
		{name: "trailing zeros", amount: "1.500000000000"},
		{name: "max integer digits", amount: "999999999999.99999999"},
		{name: "nine decimals", amount: "0.000000001", wantErr: true},
		{name: "too many integer digits", amount: "1000000000000000", wantErr: true},
		{name: "thirteen integer digits", amount: "1000000000000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(input{Amount: decimal.RequireFromString(tt.amount)})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("pointer", func(t *testing.T) {
		assert.Error(t, v.Struct(&input{Amount: decimal.RequireFromString("0.123456789")}))
	})
}

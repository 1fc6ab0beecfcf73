package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckAdd(t *testing.T) {
	tests := []struct {
		name    string
		a, b    int
		want    int
		wantErr bool
	}{
		{name: "small values", a: 10, b: 20, want: 30},
		{name: "zero plus zero", a: 0, b: 0, want: 0},
		{name: "max plus zero", a: math.MaxInt, b: 0, want: math.MaxInt},
		{name: "overflow", a: math.MaxInt, b: 1, wantErr: true},
		{name: "near max", a: math.MaxInt - 5, b: 5, want: math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckAdd(tt.a, tt.b)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCheckMul(t *testing.T) {
	tests := []struct {
		name    string
		a, b    int
		want    int
		wantErr bool
	}{
		{name: "small values", a: 6, b: 7, want: 42},
		{name: "either zero", a: 0, b: 99, want: 0},
		{name: "doubling typical capacity", a: 4096, b: 2, want: 8192},
		{name: "overflow", a: math.MaxInt/2 + 1, b: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckMul(tt.a, tt.b)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestToInt(t *testing.T) {
	got, err := ToInt(12345)
	require.NoError(t, err)
	require.Equal(t, 12345, got)

	got, err = ToInt(0)
	require.NoError(t, err)
	require.Equal(t, 0, got)
}

package main

import (
	"bytes"
	"testing"

	"github.com/aretw0/contable"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDegradedStartFlag(t *testing.T) {
	cases := []struct {
		args      []string
		wantSet   bool
		wantValue bool
		wantErr   bool
	}{
		{args: nil, wantSet: false},
		{args: []string{"--allow-degraded-start"}, wantSet: true, wantValue: true},
		{args: []string{"--allow-degraded-start=true"}, wantSet: true, wantValue: true},
		{args: []string{"--allow-degraded-start=false"}, wantSet: true, wantValue: false},
		{args: []string{"--allow-degraded-start=quizás"}, wantErr: true},
	}

	for _, tc := range cases {
		cmd := &cobra.Command{Use: "start"}
		cmd.Flags().String("allow-degraded-start", "", "")
		cmd.Flags().Lookup("allow-degraded-start").NoOptDefVal = "true"
		require.NoError(t, cmd.ParseFlags(tc.args))

		got, err := degradedStart(cmd)
		if tc.wantErr {
			assert.Error(t, err, tc.args)
			continue
		}
		require.NoError(t, err)
		value, set := got.Get()
		assert.Equal(t, tc.wantSet, set, tc.args)
		assert.Equal(t, tc.wantValue, value, tc.args)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "contable version "+contable.Version+"\n", out.String())
}

func TestOpenAPICommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"openapi"})
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "/chat-json/:")
	assert.Contains(t, out.String(), "openapi: 3.0.3")
}

package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/kcjoin/internal/cli"
	"github.com/vk/kcjoin/internal/invoker"
	"github.com/vk/kcjoin/internal/membership"
	"github.com/vk/kcjoin/internal/testutil"
)

func TestRun_Join(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	svc := &testutil.FakeService{}
	args := []string{"-user=admin", "-pass=p", "-ou=OU=PCs", "-domain=corp.example.com", "-bogus=1"}
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, logs, args, testutil.Opener(svc))

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Joined corp.example.com domain using admin in container OU=PCs")
	assert.Contains(t, out.String(), "Success!")
	require.Len(t, svc.CallsTo("join"), 1)
}

func TestRun_Unjoin(t *testing.T) {
	t.Parallel()

	svc := &testutil.FakeService{}
	out := &bytes.Buffer{}

	err := run(out, &bytes.Buffer{}, []string{"-unjoin", "-user=admin", "-pass=p"}, testutil.Opener(svc))

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Unjoined domain using admin")
	require.Len(t, svc.CallsTo("unjoin"), 1)
}

func TestRun_ValidationError(t *testing.T) {
	t.Parallel()

	svc := &testutil.FakeService{}

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"-user=admin"}, testutil.Opener(svc))

	var validationErr *invoker.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, svc.Calls())
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`
	// before the service is ever opened.
	out := &bytes.Buffer{}
	opened := false
	open := func() (membership.Service, error) {
		opened = true
		return &testutil.FakeService{}, nil
	}

	err := run(out, &bytes.Buffer{}, []string{"-h"}, open)

	require.NoError(t, err)
	assert.False(t, opened)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"-log-format=xml"}, testutil.Opener(&testutil.FakeService{}))

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
}

func TestRun_OpenFailure(t *testing.T) {
	t.Parallel()

	open := func() (membership.Service, error) {
		return nil, membership.ErrUnsupported
	}

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"-unjoin", "-user=u", "-pass=p"}, open)

	require.Error(t, err)
	assert.True(t, errors.Is(err, membership.ErrUnsupported))
	assert.Contains(t, err.Error(), "failed to initialize domain membership service")
}

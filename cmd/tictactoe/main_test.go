package main

import (
	"arcade/tictactoe/internal/config"
	"arcade/tictactoe/internal/session"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot_RegistersCommands(t *testing.T) {
	root := Root()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"play", "host", "join", "serve"}, names)

	join, _, err := root.Find([]string{"join"})
	require.NoError(t, err)
	assert.Error(t, join.Args(join, nil), "join needs a room code")
}

func TestRoot_RejectsBadConfig(t *testing.T) {
	t.Setenv("RELAY_KIND", "smoke-signals")

	root := Root()
	root.SetArgs([]string{"play"})
	root.SetOut(&bytes.Buffer{})
	err := root.Execute()
	assert.ErrorContains(t, err, "smoke-signals")
}

func TestRunInteractive_TwoPlayerGame(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Computer.Delay = time.Millisecond
	a := &app{cfg: cfg}

	var out bytes.Buffer
	in := strings.NewReader("1\n4\n2\n5\n3\nq\n")
	err = a.runInteractive(context.Background(), nil, in, &out,
		func(ctx context.Context, c *session.Controller) error {
			return c.NewGame(ctx, session.Options{Mode: session.ModeLocal, PlayerOne: "Ann", PlayerTwo: "Ben"})
		})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Ann (X) wins!")
	assert.Contains(t, out.String(), "Played 1: X won 1, O won 0, 0 drawn.")
}

func TestRunInteractive_HostWithoutRelay(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	a := &app{cfg: cfg}

	err = a.runInteractive(context.Background(), nil, strings.NewReader(""), &bytes.Buffer{},
		func(ctx context.Context, c *session.Controller) error {
			return c.Host(ctx, "Ann")
		})
	assert.Error(t, err)
}

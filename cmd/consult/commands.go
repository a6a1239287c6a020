package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentloop/consult/internal/app"
	"github.com/agentloop/consult/internal/client"
)

const (
	exitYes      = 0
	exitNo       = 1
	exitNoAnswer = 2
)

func run(args []string) int {
	var (
		configPath string
		timeout    time.Duration
		code       int
	)

	callOpts := func() []client.Option {
		if timeout > 0 {
			return []client.Option{client.WithTimeout(timeout)}
		}
		return nil
	}

	// withApp wires the bot, runs fn, and tears everything down. poll
	// controls whether the update poller is started; notify-only
	// commands skip it.
	withApp := func(poll bool, fn func(ctx context.Context, a *app.App) error) error {
		a, err := app.New(configPath)
		if err != nil {
			return err
		}
		defer a.Close()
		if poll {
			a.Start()
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return fn(ctx, a)
	}

	root := &cobra.Command{
		Use:          "consult",
		Short:         "Ask a human a question over Telegram and wait for the answer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "consult.yaml", "path to YAML config file (optional)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 0, "maximum wait for an answer (default from config)")

	root.AddCommand(&cobra.Command{
		Use:   "ask <prompt>",
		Short: "Ask a free-text question and print the reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(true, func(ctx context.Context, a *app.App) error {
				answer, ok := a.Client.Ask(ctx, args[0], callOpts()...)
				if !ok {
					code = exitNoAnswer
					return nil
				}
				fmt.Println(answer)
				return nil
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "confirm <prompt>",
		Short: "Ask a yes/no question; exit 0 on yes, 1 on no, 2 on no answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(true, func(ctx context.Context, a *app.App) error {
				yes, ok := a.Client.Confirm(ctx, args[0], callOpts()...)
				switch {
				case !ok:
					code = exitNoAnswer
				case yes:
					code = exitYes
				default:
					code = exitNo
				}
				return nil
			})
		},
	})

	var columns int
	choiceCmd := &cobra.Command{
		Use:   "choice <prompt> <option>...",
		Short: "Ask a single-choice question and print the selected option's index",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(true, func(ctx context.Context, a *app.App) error {
				opts := append(callOpts(), client.WithColumns(columns))
				index, ok := a.Client.Choice(ctx, args[0], args[1:], opts...)
				if !ok {
					code = exitNoAnswer
					return nil
				}
				fmt.Println(index)
				return nil
			})
		},
	}
	choiceCmd.Flags().IntVar(&columns, "columns", 4, "buttons per keyboard row")
	root.AddCommand(choiceCmd)

	root.AddCommand(&cobra.Command{
		Use:   "notify <message>",
		Short: "Send a message without waiting for a reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(ctx context.Context, a *app.App) error {
				a.Client.Notify(args[0])
				return nil
			})
		},
	})

	var limit int
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Print recent questions and their answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(ctx context.Context, a *app.App) error {
				svc := a.History()
				if svc == nil {
					return fmt.Errorf("history requires a configured database (DATABASE_URL)")
				}
				entries, err := svc.List(ctx, limit)
				if err != nil {
					return err
				}
				for _, e := range entries {
					line := fmt.Sprintf("%s  [%s/%s]  %s",
						e.AskedAt.Format(time.RFC3339), e.Kind, e.Status, e.Prompt)
					if e.Answer != "" {
						line += "  -> " + e.Answer
					}
					fmt.Println(line)
				}
				return nil
			})
		},
	}
	historyCmd.Flags().IntVar(&limit, "limit", 20, "number of entries to print")
	root.AddCommand(historyCmd)

	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "consult:", err)
		return 1
	}
	return code
}

// Command emotionctl is the operator CLI for emotionlog: schema migrations,
// one-off classification and direct access to stored emotions and clients.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emotionlog/emotionlog/internal/app"
	"github.com/emotionlog/emotionlog/internal/config"
	"github.com/emotionlog/emotionlog/internal/logging"
	"github.com/emotionlog/emotionlog/internal/model"
	"github.com/emotionlog/emotionlog/internal/repository"
	"github.com/emotionlog/emotionlog/internal/sentiment"
	"github.com/emotionlog/emotionlog/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// cli holds state shared by every subcommand.
type cli struct {
	envFile string
	verbose bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "emotionctl",
		Short:         "Operate an emotionlog deployment",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "optional dotenv file loaded before the environment")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(c.migrateCmd())
	root.AddCommand(c.classifyCmd())
	root.AddCommand(c.emotionsCmd())
	root.AddCommand(c.clientsCmd())

	return root
}

func (c *cli) load(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	if _, err := config.LoadDotEnv(c.envFile); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	level := cfg.LogLevel
	if c.verbose {
		level = "debug"
	}
	return cfg, logging.New(cmd.ErrOrStderr(), level, logging.FormatText), nil
}

func (c *cli) withApp(cmd *cobra.Command, fn func(a *app.App) error) error {
	cfg, logger, err := c.load(cmd)
	if err != nil {
		return err
	}
	a, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(repository.MigrateUp), string(repository.MigrateDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := repository.MigrateUp
			if len(args) == 1 {
				direction = repository.MigrateDirection(args[0])
			}

			cfg, logger, err := c.load(cmd)
			if err != nil {
				return err
			}
			if err := repository.Migrate(cfg.DatabaseURL, direction, logger); err != nil {
				return fmt.Errorf("migrate %s: %s", direction, logging.SanitizeError(err, cfg.DatabaseURL))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", direction)
			return nil
		},
	}
}

func (c *cli) classifyCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "classify <text>",
		Short: "Classify text with the sentiment provider without storing it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := c.load(cmd)
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			client := sentiment.NewClient(cfg.Sentiment(), nil, logger)

			if raw {
				body, err := client.Classify(cmd.Context(), text)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", body)
				return nil
			}

			result, err := sentiment.NewAnalyzer(client, logger, nil).Analyze(cmd.Context(), text)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.4f\n", result.Label, result.Score)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the provider response body unparsed")

	return cmd
}

func (c *cli) emotionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emotions",
		Short: "Inspect and delete stored emotions",
	}

	var types []string
	list := &cobra.Command{
		Use:   "list",
		Short: "List emotions, optionally filtered by label",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(a *app.App) error {
				emotions, err := a.Emotions.FindAllEmotions(cmd.Context(), service.EmotionFilter{Types: types})
				if err != nil {
					return err
				}
				return printEmotions(cmd.OutOrStdout(), emotions)
			})
		},
	}
	list.Flags().StringSliceVar(&types, "type", nil, "label filter, repeatable or comma-separated")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an emotion by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(a *app.App) error {
				if err := a.Emotions.DeleteEmotion(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted emotion %d\n", id)
				return nil
			})
		},
	}

	cmd.AddCommand(list, del)
	return cmd
}

func (c *cli) clientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage clients",
	}

	resolve := &cobra.Command{
		Use:   "resolve <email>",
		Short: "Find the client with this email, creating it if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(a *app.App) error {
				client, created, err := a.Clients.ReadOrCreateClient(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				state := "existing"
				if created {
					state = "created"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", client.ID, client.Email, state)
				return nil
			})
		},
	}

	cmd.AddCommand(resolve)
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}

func printEmotions(w io.Writer, emotions []*model.Emotion) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tSCORE\tCLIENT\tTEXT")
	for _, e := range emotions {
		label, score := "-", "-"
		if e.Type != nil {
			label = *e.Type
		}
		if e.Score != nil {
			score = strconv.FormatFloat(*e.Score, 'f', 4, 64)
		}
		client := strconv.FormatInt(e.ClientID, 10)
		if e.Client != nil {
			client = e.Client.Email
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.ID, label, score, client, truncate(e.Text, 60))
	}
	return tw.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

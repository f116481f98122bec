package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kailas-cloud/jobmatch/internal/version"
	jobmatch "github.com/kailas-cloud/jobmatch/pkg/sdk"
)

// Config keys. Each is also readable from JOBMATCH_<KEY> and ~/.jobmatch.yaml.
const (
	keyServer  = "server"
	keyUser    = "user"
	keyAPIKey  = "api_key"
	keyTimeout = "timeout"
)

// cli holds state shared by all subcommands.
type cli struct {
	v   *viper.Viper
	out io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{v: viper.New(), out: out}
	var configFile string

	root := &cobra.Command{
		Use:           "jobmatchctl",
		Short:         "Score job titles and manage recommendations, saved jobs and applications",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.loadConfig(configFile)
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default ~/.jobmatch.yaml)")
	pf.String("server", "http://localhost:8080", "jobmatch server URL")
	pf.String("user", "", "user id sent as X-User-ID")
	pf.String("api-key", "", "bearer API key")
	pf.Duration("timeout", 200*time.Second, "request timeout")
	_ = c.v.BindPFlag(keyServer, pf.Lookup("server"))
	_ = c.v.BindPFlag(keyUser, pf.Lookup("user"))
	_ = c.v.BindPFlag(keyAPIKey, pf.Lookup("api-key"))
	_ = c.v.BindPFlag(keyTimeout, pf.Lookup("timeout"))

	c.v.SetEnvPrefix("JOBMATCH")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	root.AddCommand(
		c.scoreCmd(),
		c.rankCmd(),
		c.recommendCmd(),
		c.savedCmd(),
		c.appsCmd(),
		c.alertsCmd(),
		c.healthCmd(),
		c.versionCmd(),
	)
	return root
}

func (c *cli) loadConfig(path string) error {
	c.v.SetConfigType("yaml")
	if path != "" {
		c.v.SetConfigFile(path)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	c.v.SetConfigFile(filepath.Join(home, ".jobmatch.yaml"))
	// The default file is optional.
	if err := c.v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// client builds an SDK client from flags, env and config file.
func (c *cli) client() (*jobmatch.Client, error) {
	user := c.v.GetString(keyUser)
	if user == "" {
		return nil, errors.New("user id required (--user or JOBMATCH_USER)")
	}
	return jobmatch.New(c.v.GetString(keyServer), user,
		jobmatch.WithAPIKey(c.v.GetString(keyAPIKey)),
		jobmatch.WithTimeout(c.v.GetDuration(keyTimeout)),
	)
}

func (c *cli) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func (c *cli) println(args ...any) {
	_, _ = fmt.Fprintln(c.out, args...)
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			c.println("jobmatchctl", version.String())
		},
	}
}

package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/smarthire/smarthire-cli/internal/match"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "smarthire"
)

type Config struct {
	APIURL      string          `mapstructure:"api-url"`
	UserAgent   string          `mapstructure:"user-agent"`
	SessionFile string          `mapstructure:"session-file"`
	ContextDir  string          `mapstructure:"context-dir"`
	Sort        string          `mapstructure:"sort"`
	Search      *SearchConfig   `mapstructure:"search"`
	Matching    *MatchingConfig `mapstructure:"matching"`
}

type SearchConfig struct {
	Text          string   `mapstructure:"text"`
	Location      string   `mapstructure:"location"`
	ExperienceMin int      `mapstructure:"experience-min"`
	ExperienceMax int      `mapstructure:"experience-max"`
	Skills        []string `mapstructure:"skills"`
	Operator      string   `mapstructure:"operator"`
	Remote        bool     `mapstructure:"remote"`
	Mode          string   `mapstructure:"mode"`
	Limit         int      `mapstructure:"limit"`
	// Presets are named quick-filter skill sets. A preset replaces the skills
	// filter and matches with OR, so any one of its skills qualifies.
	Presets map[string][]string `mapstructure:"presets"`
}

// Built-in quick filters, available without any configuration. Config presets
// with the same name take precedence.
var defaultPresets = map[string][]string{
	"frontend": {"javascript", "react", "css"},
	"backend":  {"python", "java", "sql"},
	"devops":   {"docker", "kubernetes", "aws"},
	"data":     {"python", "sql", "machine learning"},
}

type MatchingConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// ResumeID pins the resume half explicitly; when empty the candidate
	// commands resolve it through the profile check.
	ResumeID string `mapstructure:"resume-id"`
	// JobID is the posting the recruiter commands compare candidates against.
	JobID string `mapstructure:"job-id"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "smarthire is a cli client for the SmartHire job-matching platform",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("session-file", "SMARTHIRE_SESSION_FILE"); err != nil {
		log.Fatalf("binding SMARTHIRE_SESSION_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is smarthire.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// A missing config file is fine; flags and defaults carry the commands.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.Search == nil {
		config.Search = &SearchConfig{}
	}
	if config.Matching == nil {
		config.Matching = &MatchingConfig{}
	}
	if config.ContextDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		config.ContextDir = filepath.Join(home, "."+app)
	}
	if config.Sort == "" {
		config.Sort = string(match.OrderNone)
	}

	return config, nil
}

func (c *SearchConfig) request(target match.Target) *match.SearchRequest {
	mode := match.Mode(c.Mode)
	if mode == "" {
		mode = match.ModeAuto
	}

	operator := c.Operator
	if operator == "" {
		operator = "AND"
	}

	experienceMax := c.ExperienceMax
	if experienceMax == 0 {
		experienceMax = 10
	}

	return &match.SearchRequest{
		Query: c.Text,
		Filters: match.Filters{
			Location:      c.Location,
			ExperienceMin: c.ExperienceMin,
			ExperienceMax: experienceMax,
			Skills:        c.Skills,
			Operator:      operator,
			Remote:        c.Remote,
		},
		Target: target,
		Mode:   mode,
		Limit:  c.Limit,
	}
}

// applyPreset swaps the request's skill filter for a named quick-filter set.
func (c *SearchConfig) applyPreset(req *match.SearchRequest, name string) error {
	skills, ok := c.Presets[name]
	if !ok {
		skills, ok = defaultPresets[name]
	}
	if !ok || len(skills) == 0 {
		return fmt.Errorf("unknown skills preset: %s", name)
	}

	req.Filters.Skills = skills
	req.Filters.Operator = "OR"
	return nil
}

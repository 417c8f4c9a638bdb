package internal

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Platform represents the cloud hosting the monitored VMs.
type Platform string

const (
	PlatformAWS   Platform = "aws"
	PlatformAzure Platform = "azure"
	PlatformGCP   Platform = "gcp"
	PlatformSim   Platform = "sim"
)

type RuntimeConfig struct {
	// Common fields - used by all platforms
	ListenAddress        string `env:"LISTEN_ADDRESS" envDefault:":8080"`
	AlertToken           string `env:"ALERT_TOKEN"`
	AlertTokenSecretName string `env:"ALERT_TOKEN_SECRET_NAME"`

	// Policy parameters, immutable after startup.
	ScaleUpAbove   float64       `env:"SCALE_UP_ABOVE" envDefault:"80"`
	ScaleDownBelow float64       `env:"SCALE_DOWN_BELOW" envDefault:"20"`
	AverageWindow  int           `env:"AVERAGE_WINDOW" envDefault:"3"`
	Cooldown       time.Duration `env:"COOLDOWN" envDefault:"120s"`
	HistoryWindow  int           `env:"HISTORY_WINDOW" envDefault:"20"`

	// Alert validation.
	ReplayWindow int           `env:"REPLAY_WINDOW" envDefault:"256"`
	ClockSkew    time.Duration `env:"CLOCK_SKEW" envDefault:"60s"`

	// Resize execution.
	MaxRetryAttempts   int           `env:"MAX_RETRY_ATTEMPTS" envDefault:"4"`
	BackoffBase        time.Duration `env:"BACKOFF_BASE" envDefault:"2s"`
	ResizePollInterval time.Duration `env:"RESIZE_POLL_INTERVAL" envDefault:"5s"`
	ResizePollTimeout  time.Duration `env:"RESIZE_POLL_TIMEOUT" envDefault:"120s"`

	// FlavorLadderSpec is the ordered size catalog, smallest first, in
	// "name=cpu:ramMB,..." form.
	FlavorLadderSpec string `env:"FLAVOR_LADDER" envDefault:"m1.small=1:2048,m1.medium=2:4096,m1.large=4:8192"`

	// State durability and the lease safety net.
	SnapshotPath      string        `env:"SNAPSHOT_PATH"`
	SnapshotInterval  time.Duration `env:"SNAPSHOT_INTERVAL" envDefault:"60s"`
	LeaseMaxAge       time.Duration `env:"LEASE_MAX_AGE" envDefault:"10m"`
	LeaseReapInterval time.Duration `env:"LEASE_REAP_INTERVAL" envDefault:"1m"`

	// AWS-specific fields - use awsEnv tag
	AWSRegion string `awsEnv:"AWS_REGION_NAME,notEmpty"`

	// Azure-specific fields - use azEnv tag
	AzureSubscriptionID string `azEnv:"AZURE_SUBSCRIPTION_ID,notEmpty"`
	AzureResourceGroup  string `azEnv:"AZURE_RESOURCE_GROUP,notEmpty"`
	AzureKeyVaultName   string `azEnv:"AZURE_KEY_VAULT_NAME"`

	// GCP-specific fields - use gcpEnv tag
	GCPProject string `gcpEnv:"GCP_PROJECT,notEmpty"`
	GCPZone    string `gcpEnv:"GCP_ZONE,notEmpty"`

	// Ladder is the parsed FlavorLadderSpec, populated by Parse.
	Ladder FlavorLadder `env:"-"`
}

// Parse parses environment variables into the config for the specified
// platform and validates the result.
func (r *RuntimeConfig) Parse(platform Platform) error {
	var allErrors env.AggregateError

	// Common fields for all platforms
	tags := []string{"env"}

	// Add platform-specific tags
	switch platform {
	case PlatformAWS:
		tags = append(tags, "awsEnv")
	case PlatformAzure:
		tags = append(tags, "azEnv")
	case PlatformGCP:
		tags = append(tags, "gcpEnv")
	}

	for _, tag := range tags {
		if err := env.ParseWithOptions(r, env.Options{TagName: tag}); err != nil {
			if aggErr, ok := err.(env.AggregateError); ok {
				allErrors.Errors = append(allErrors.Errors, aggErr.Errors...)
			} else {
				allErrors.Errors = append(allErrors.Errors, err)
			}
		}
	}

	if len(allErrors.Errors) > 0 {
		return allErrors
	}

	return r.validate(platform)
}

func (r *RuntimeConfig) validate(platform Platform) error {
	if !(0 < r.ScaleDownBelow && r.ScaleDownBelow < r.ScaleUpAbove && r.ScaleUpAbove < 100) {
		return fmt.Errorf(
			"invalid thresholds: need 0 < SCALE_DOWN_BELOW (%.1f) < SCALE_UP_ABOVE (%.1f) < 100",
			r.ScaleDownBelow, r.ScaleUpAbove,
		)
	}

	if r.HistoryWindow < 1 {
		return fmt.Errorf("HISTORY_WINDOW must be at least 1, got %d", r.HistoryWindow)
	}

	if r.AverageWindow < 1 || r.AverageWindow > r.HistoryWindow {
		return fmt.Errorf("AVERAGE_WINDOW must be within [1, HISTORY_WINDOW], got %d", r.AverageWindow)
	}

	if r.ReplayWindow < 1 {
		return fmt.Errorf("REPLAY_WINDOW must be at least 1, got %d", r.ReplayWindow)
	}

	if r.MaxRetryAttempts < 1 {
		return fmt.Errorf("MAX_RETRY_ATTEMPTS must be at least 1, got %d", r.MaxRetryAttempts)
	}

	if r.AlertToken == "" && r.AlertTokenSecretName == "" && platform != PlatformSim {
		return fmt.Errorf("either ALERT_TOKEN or ALERT_TOKEN_SECRET_NAME must be set")
	}

	ladder, err := ParseLadder(r.FlavorLadderSpec)
	if err != nil {
		return fmt.Errorf("could not parse FLAVOR_LADDER: %w", err)
	}
	r.Ladder = ladder

	return nil
}

// Thresholds returns the policy parameters in the form the decision
// function consumes.
func (r RuntimeConfig) Thresholds() Thresholds {
	return Thresholds{
		ScaleUpAbove:   r.ScaleUpAbove,
		ScaleDownBelow: r.ScaleDownBelow,
		AverageWindow:  r.AverageWindow,
	}
}

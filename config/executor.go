package config

import "time"

// ExecutorConfig contains notebook execution subprocess configuration.
type ExecutorConfig struct {
	// CLIPath is the execution CLI binary launched for each job.
	CLIPath string `env:"CLI_PATH" envDefault:"notebooker-cli"`

	// OutputDir is where the subprocess writes executed notebooks.
	OutputDir string `env:"OUTPUT_DIR" envDefault:"/var/lib/notebooker/output"`

	// TemplateDir is the notebook template checkout.
	TemplateDir string `env:"TEMPLATE_DIR" envDefault:"/var/lib/notebooker/templates"`

	// PyTemplateDir is an optional python-source template directory.
	PyTemplateDir string `env:"PY_TEMPLATE_DIR" envDefault:""`

	// DisableGit skips template repository git pulls in the subprocess.
	DisableGit bool `env:"DISABLE_GIT" envDefault:"false"`

	// DefaultMailfrom is the sender address used when a request omits one.
	DefaultMailfrom string `env:"DEFAULT_MAILFROM" envDefault:""`

	// DefaultRetries is the execution retry count used when a request omits one.
	DefaultRetries int `env:"DEFAULT_RETRIES" envDefault:"3"`

	// GracePeriod is how long an asynchronous submit watches the subprocess
	// before reporting the job as launched.
	GracePeriod time.Duration `env:"GRACE_PERIOD" envDefault:"1s"`
}

// Sanitize applies guardrails to executor configuration values.
func (e *ExecutorConfig) Sanitize() {
	if e.DefaultRetries < 0 {
		e.DefaultRetries = 0
	}
	if e.GracePeriod <= 0 {
		e.GracePeriod = time.Second
	}
}

// SnapshotConfig contains snapshot export configuration.
type SnapshotConfig struct {
	// Root is the directory tree snapshot exports are written under.
	Root string `env:"ROOT" envDefault:"/var/lib/notebooker/snapshots"`
}

package reconcile

// Config controls how a sync run is executed.
type Config struct {
	// DryRun plans and logs every decision but creates nothing.
	DryRun bool `mapstructure:"dry_run" default:"false"`
	// Parallel is the number of targets synced at the same time.
	// With 1, targets are synced one after another in configuration order.
	Parallel int `mapstructure:"parallel" default:"1" validate:"min=1"`
}

package instance

// Role is the part an instance plays in a sync run.
type Role string

const (
	// RoleSource marks the instance whose catalog is copied.
	RoleSource Role = "source"
	// RoleTarget marks an instance that receives movies.
	RoleTarget Role = "target"
)

// Endpoint addresses one Radarr instance.
type Endpoint struct {
	// Name is the INI section the endpoint was read from.
	Name string `ini:"-" validate:"required"`
	// URL is the base URL of the instance (e.g. "http://radarr:7878").
	URL string `ini:"url" validate:"required,url,startswith=http"`
	// APIKey authenticates every request to the instance.
	APIKey string `ini:"api_key" validate:"required"`
	// Role is fixed when the registry builds the endpoint.
	Role Role `ini:"-" validate:"oneof=source target"`
}

// Target is an endpoint that receives movies from the source, together with
// the filter and remapping rules applied on the way.
type Target struct {
	Endpoint

	// SourceProfile is the quality profile a source movie must carry to be copied.
	SourceProfile int `ini:"source_profile"`
	// TargetProfile is the quality profile assigned to the created movie.
	TargetProfile int `ini:"target_profile"`
	// PathFrom is the library path prefix on the source.
	PathFrom string `ini:"path_from"`
	// PathTo replaces PathFrom in the created movie's path.
	PathTo string `ini:"path_to"`
}

// Registry is the validated set of instances taking part in a run.
type Registry struct {
	// Source is the instance whose catalog is read.
	Source Endpoint
	// Targets are the receiving instances, in configuration order.
	Targets []Target
}

// TargetNames returns the names of all targets in order.
func (r *Registry) TargetNames() []string {
	names := make([]string, 0, len(r.Targets))
	for _, t := range r.Targets {
		names = append(names, t.Name)
	}
	return names
}

// Package v1alpha1 contains the project configuration types consumed by the
// bootstrap and packaging pipelines.
package v1alpha1

// Project describes a bootstrapped application project. All fields can be
// overridden through dadyarctl.yaml in the project root; zero values are
// replaced by the defaults from NewProject.
type Project struct {
	// EntryPoint is the application entry file invoked by the sandbox
	// interpreter. It must support headless execution.
	EntryPoint string `mapstructure:"entryPoint"`

	// Requirements is the dependency manifest file, one specifier per line.
	Requirements string `mapstructure:"requirements"`

	// SentinelImport is the representative heavy dependency probed to decide
	// whether dependency installation can be skipped entirely.
	SentinelImport string `mapstructure:"sentinelImport"`

	// MinRuntimeVersion is the minimum interpreter major.minor version the
	// locator accepts.
	MinRuntimeVersion string `mapstructure:"minRuntimeVersion"`

	// Launch holds launch-mode settings.
	Launch Launch `mapstructure:"launch"`

	// Bundle holds the packaging manifest.
	Bundle Bundle `mapstructure:"bundle"`
}

// Launch configures how the application is started.
type Launch struct {
	// Headless starts the application server without opening a browser or
	// prompting. The entry point honors the corresponding environment
	// variables.
	Headless bool `mapstructure:"headless"`
}

// Bundle declares what the packager freezes into the distributable.
type Bundle struct {
	// Name is the distributable name; the output executable is
	// dist/<name>/<name>.
	Name string `mapstructure:"name"`

	// EntryPoint is the entry file analyzed by the freezing tool. Defaults
	// to the project entry point.
	EntryPoint string `mapstructure:"entryPoint"`

	// DataIncludes are files and directories shipped verbatim, laid out so
	// the executable's relative data paths match the source project.
	DataIncludes []DataInclude `mapstructure:"dataIncludes"`

	// HeavyDependencies are libraries whose data files and dynamically loaded
	// submodules must be collected explicitly. Collection happens per entry;
	// it is not transitive across dependencies.
	HeavyDependencies []string `mapstructure:"heavyDependencies"`

	// HiddenImports are modules loaded dynamically at runtime that static
	// analysis cannot see.
	HiddenImports []string `mapstructure:"hiddenImports"`

	// ExcludedModules are large, irrelevant packages kept out of the bundle
	// to bound output size.
	ExcludedModules []string `mapstructure:"excludedModules"`
}

// DataInclude maps a source path to its destination inside the bundle.
type DataInclude struct {
	Source string `mapstructure:"source"`
	Dest   string `mapstructure:"dest"`
}

// NewProject returns a Project populated with the application defaults.
func NewProject() *Project {
	return &Project{
		EntryPoint:        "launcher.py",
		Requirements:      "requirements.txt",
		SentinelImport:    "streamlit",
		MinRuntimeVersion: "3.9",
		Launch: Launch{
			Headless: true,
		},
		Bundle: Bundle{
			Name:       "dadyar",
			EntryPoint: "launcher.py",
			DataIncludes: []DataInclude{
				{Source: "app.py", Dest: "."},
				{Source: "config", Dest: "config"},
				{Source: "modules", Dest: "modules"},
				{Source: "data", Dest: "data"},
			},
			HeavyDependencies: []string{"streamlit", "plotly", "hazm"},
			HiddenImports:     []string{"openai", "google.generativeai"},
			ExcludedModules: []string{
				"matplotlib",
				"scipy",
				"IPython",
				"jupyter",
				"tkinter",
				"pytest",
			},
		},
	}
}

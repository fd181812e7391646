package repository

type Repository struct {
	Kind   string
	Root   string
	Origin string
	Info   *Project
}

// Project represents information about a detected project
type Project struct {
	RootPath     string // Absolute path to the project root directory
	Type         string // Type of project (javascript, typescript, git)
	Name         string // Name of the project (package.json name or directory)
	RelativePath string // Path from project root to the specified file
	ConfigPath   string // Closest lint configuration file, empty when none exists
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/kazz187/blueprint/internal/azdo"
	"github.com/kazz187/blueprint/internal/clone"
	"github.com/kazz187/blueprint/internal/config"
	"github.com/kazz187/blueprint/pkg/clog"
	"github.com/kazz187/blueprint/pkg/poll"
)

var (
	app = kingpin.New("blueprint", "Clone an Azure DevOps project from a template project")

	verbose = app.Flag("verbose", "Enable debug logging").Short('v').Bool()

	// Clone command
	cloneCmd         = app.Command("clone", "Clone a template project into a new project")
	cloneTemplate    = cloneCmd.Flag("template", "Template project name or ID").String()
	cloneName        = cloneCmd.Flag("name", "Name of the project to create").String()
	cloneDescription = cloneCmd.Flag("description", "Description of the new project").String()
	cloneVisibility  = cloneCmd.Flag("visibility", "Project visibility").Default("private").Enum("private", "public")
	cloneManifest    = cloneCmd.Flag("file", "Clone manifest file (YAML)").Short('f').String()

	// Project commands
	projectsCmd     = app.Command("projects", "Project commands")
	projectsListCmd = projectsCmd.Command("list", "List projects in the organization")
)

// manifest is the YAML shape accepted by `blueprint clone -f`.
type manifest struct {
	Template    string `yaml:"template"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Visibility  string `yaml:"visibility"`
}

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(clog.NewAttributesHandler(clog.NewTextHandler(os.Stderr, clog.WithLevel(level)))))

	env, err := config.LoadCLIEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading environment: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := azdo.NewClient(env.OrgURL, env.Token)

	switch command {
	case cloneCmd.FullCommand():
		handleClone(ctx, client, env)
	case projectsListCmd.FullCommand():
		handleProjectsList(ctx, client)
	}
}

func handleClone(ctx context.Context, client *azdo.Client, env *config.CLIEnv) {
	params := clone.CloneParams{
		TemplateProject: *cloneTemplate,
		Name:            *cloneName,
		Description:     *cloneDescription,
		Visibility:      *cloneVisibility,
	}
	if *cloneManifest != "" {
		data, err := os.ReadFile(*cloneManifest)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading manifest: %v\n", err)
			os.Exit(1)
		}
		var m manifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing manifest: %v\n", err)
			os.Exit(1)
		}
		// Flags override manifest values.
		if params.TemplateProject == "" {
			params.TemplateProject = m.Template
		}
		if params.Name == "" {
			params.Name = m.Name
		}
		if params.Description == "" {
			params.Description = m.Description
		}
		if m.Visibility != "" && *cloneVisibility == "private" {
			params.Visibility = m.Visibility
		}
	}
	if params.TemplateProject == "" || params.Name == "" {
		fmt.Fprintln(os.Stderr, "Both a template project and a new project name are required (use --template/--name or -f)")
		os.Exit(1)
	}

	coordinator := clone.NewCoordinator(
		client,
		clone.NewCorrelator(client),
		clone.NewTeamReplicator(client, client),
		clone.NewRepoReplicator(client, client, client.Token(), env.RepoConcurrency),
		poll.Config{Interval: env.PollInterval, Timeout: env.PollTimeout},
	)

	fmt.Printf("Cloning %s into %s...\n", color.CyanString(params.TemplateProject), color.CyanString(params.Name))
	result, err := coordinator.Run(ctx, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Clone failed:"), err)
		os.Exit(1)
	}

	fmt.Printf("%s %s\n", color.GreenString("Created project"), result.Target.Name)
	fmt.Printf("  Areas mapped:      %d\n", result.AreasMapped)
	fmt.Printf("  Iterations mapped: %d\n", result.IterationsMapped)
	fmt.Printf("  Teams cloned:      %d\n", result.TeamsCloned)
	fmt.Printf("  Repositories:      %d\n", result.Repositories)
	if result.Message != "" {
		fmt.Printf("  Note: %s\n", result.Message)
	}
}

func handleProjectsList(ctx context.Context, client *azdo.Client) {
	projects, err := client.ListProjects(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing projects: %v\n", err)
		os.Exit(1)
	}
	if len(projects) == 0 {
		fmt.Println("No projects found")
		return
	}
	for _, p := range projects {
		state := string(p.State)
		if p.State == azdo.ProjectStateWellFormed {
			state = color.GreenString(state)
		}
		fmt.Printf("%-36s  %-24s  %s\n", p.ID, p.Name, state)
	}
}

package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"termfeed/infra/auth"
	"termfeed/infra/config"
	"termfeed/infra/editor"
	"termfeed/infra/logging"
	"termfeed/infra/rest"
	"termfeed/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: termfeed [--version|-version|-v] [--help|-h]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("termfeed %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(2)
	}

	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// 2. Logging goes to a file; stdout belongs to the TUI.
	log, closeLog, err := logging.Open(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// 3. Build infrastructure.
	tokenProvider := auth.NewFileTokenProvider(cfg.TokenPath)
	client := rest.NewClient(cfg.BaseURL, tokenProvider, log)

	// 4. Build services (concrete types satisfy app.* interfaces).
	profileSvc := rest.NewProfileService(client)

	uiState, err := config.LoadUIState(cfg.UIStatePath)
	if err != nil {
		log.Warn().Err(err).Msg("ui state unreadable, using defaults")
		uiState = config.UIState{ShowPinned: true}
	}

	// 5. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Comments: rest.NewCommentService(client),
		Posts:    rest.NewPostService(client),
		Profiles: profileSvc,
		Groups:   rest.NewGroupService(client),
		Search:   rest.NewSearchService(client),
		Account:  rest.NewAccountService(client, cfg.UserCachePath),
		Resolver: rest.NewMentionResolver(profileSvc),
		Editor:   editor.NewEnvEditor(),
		User:     auth.LoadCachedUser(cfg.UserCachePath),
		LoggedIn: tokenProvider.LoggedIn(),
		Config:   cfg,
		UIState:  uiState,
		Log:      log,
	})

	// 6. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "termfeed: %v\n", err)
		os.Exit(1)
	}
}

// Package main provides the interactive loadout editor. Commands are read
// line by line from stdin and applied to a single loadout until quit,
// end of input, or SIGINT/SIGTERM.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/mechlab/internal/config"
	"github.com/cory-johannsen/mechlab/internal/game/catalog"
	"github.com/cory-johannsen/mechlab/internal/game/command"
	"github.com/cory-johannsen/mechlab/internal/game/loadout"
	"github.com/cory-johannsen/mechlab/internal/game/message"
	"github.com/cory-johannsen/mechlab/internal/game/operation"
	"github.com/cory-johannsen/mechlab/internal/observability"
	"github.com/cory-johannsen/mechlab/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty uses built-in defaults")
	chassisID := flag.String("chassis", "", "chassis id to load; overrides editor.default_chassis")
	name := flag.String("name", "", "loadout name; defaults to the chassis name")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	reg, err := catalog.LoadDir(cfg.Catalog.Dir)
	if err != nil {
		logger.Fatal("loading catalog", zap.String("dir", cfg.Catalog.Dir), zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.Int("chassis", len(reg.AllChassis())),
		zap.Int("items", len(reg.AllItems())),
		zap.Duration("elapsed", time.Since(start)),
	)

	id := cfg.Editor.DefaultChassis
	if *chassisID != "" {
		id = *chassisID
	}
	l, err := newLoadout(reg, cfg.Editor, id, *name)
	if err != nil {
		logger.Fatal("creating loadout", zap.String("chassis", id), zap.Error(err))
	}
	logger.Info("loadout created",
		zap.String("id", l.ID().String()),
		zap.String("chassis", l.Chassis().ID),
	)

	bus := message.NewBus(logger)
	stack := operation.NewStack(cfg.Editor.HistoryDepth, logger)
	editor := command.NewEditor(reg, l, stack, bus, logger)
	defer editor.Close()

	fmt.Printf("Editing %s (%s). Type 'help' for a list of commands.\n", l.Name(), l.Chassis().Name)
	lc := server.NewLifecycle(logger)
	lc.Add("console", server.NewConsole(editor, os.Stdin, os.Stdout, logger))
	if err := lc.Run(context.Background()); err != nil {
		logger.Error("editor session", zap.Error(err))
	}
}

// loadConfig reads path, or the built-in defaults when path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.LoadFromViper(config.Defaults())
	}
	return config.Load(path)
}

// newLoadout builds an empty loadout of chassis id, replacing the chassis
// default upgrades with any named in cfg.
//
// Precondition: reg is resolved.
// Postcondition: an unknown or mistyped upgrade override is an error.
func newLoadout(reg *catalog.Registry, cfg config.EditorConfig, id, name string) (*loadout.Loadout, error) {
	chassis, ok := reg.Chassis(id)
	if !ok {
		return nil, fmt.Errorf("chassis %q not found", id)
	}
	upgrades, err := reg.DefaultUpgrades(chassis)
	if err != nil {
		return nil, err
	}
	overrides := []struct {
		id   string
		typ  catalog.UpgradeType
		dest **catalog.Upgrade
	}{
		{cfg.Structure, catalog.UpgradeStructure, &upgrades.Structure},
		{cfg.Armor, catalog.UpgradeArmor, &upgrades.Armor},
		{cfg.HeatSinks, catalog.UpgradeHeatSink, &upgrades.HeatSink},
		{cfg.Guidance, catalog.UpgradeGuidance, &upgrades.Guidance},
	}
	for _, o := range overrides {
		if o.id == "" {
			continue
		}
		if chassis.IsOmni() && (o.typ == catalog.UpgradeStructure || o.typ == catalog.UpgradeArmor) {
			return nil, fmt.Errorf("%s upgrade of omni chassis %s is fixed", o.typ, chassis.Name)
		}
		u, ok := reg.Upgrade(o.id)
		if !ok {
			return nil, fmt.Errorf("upgrade %q not found", o.id)
		}
		if u.Type != o.typ {
			return nil, fmt.Errorf("upgrade %q is %s, want %s", o.id, u.Type, o.typ)
		}
		if !u.Faction.IsCompatible(chassis.Faction) {
			return nil, fmt.Errorf("upgrade %q is not available to %s", o.id, chassis.Name)
		}
		*o.dest = u
	}

	var opts []loadout.Option
	if name != "" {
		opts = append(opts, loadout.WithName(name))
	}
	if chassis.IsOmni() {
		opts = append(opts, loadout.WithOmniPods(reg.DefaultPods(chassis)...))
	}
	return loadout.New(chassis, upgrades, opts...)
}

package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"plu/emu"
	"plu/emu/log"
	"plu/rom"
)

func main() {
	cli := parseArgs(os.Args[1:])

	if cli.LogFile != nil {
		log.SetOutput(cli.LogFile)
		defer cli.LogFile.Close()
	}

	switch cli.mode {
	case runMode:
		cfg := loadConfig(cli.Config)
		runMain(cli.Run, cfg, cli.LogFile)
	case infoMode:
		img, err := rom.ReadImage(cli.Info.RomPath)
		checkf(err, "failed to open rom")
		img.PrintInfos(os.Stdout)
	case versionMode:
		printVersion()
	case saveConfigMode:
		saveConfig(cli.SaveConfig.Output, cli.Config)
	}
}

func loadConfig(path string) emu.Config {
	if path == "" {
		return emu.LoadConfigOrDefault()
	}
	cfg, err := emu.LoadConfig(path)
	checkf(err, "failed to load configuration")
	return cfg
}

// saveConfig writes the effective configuration at dst, or in place of the
// configuration file if dst is empty.
func saveConfig(dst, cfgPath string) {
	cfg := loadConfig(cfgPath)
	if dst == "" {
		dst = cfgPath
	}
	if dst == "" {
		dst = emu.ConfigPath()
	}
	checkf(emu.SaveConfig(dst, cfg), "failed to save configuration")
	fmt.Println("configuration written to", dst)
}

func printVersion() {
	version := "(devel)"
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		version = bi.Main.Version
	}
	fmt.Println("plu", version)
}

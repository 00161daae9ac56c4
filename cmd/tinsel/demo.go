package main

import (
	"github.com/spf13/cobra"

	"github.com/crimson-sun/tinsel/pkg/tinsel"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Show every level, box and markup style",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		l, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer l.Close()
		demo(l)
		return nil
	},
}

func demo(l *tinsel.Logger) {
	l.Info("Server", "Starting")
	l.Successf("Login", "User _%s_ connected", "Alice")
	l.Debugf("Processing", "Items in queue: %d", 42)
	l.Warnf("Memory", "Usage at %d%%", 85)
	l.Error("Database", "* **Connection _failed_***")

	l.InfoBox("System", "**Your _super secure super system_ is starting up.**")
	l.WarnBox("Memory", "Memory usage is at **85%**")
	l.ErrorBox("Database", "Database connection failed")
	l.SuccessBox("Login", "User Alice connected")
	l.DebugBox("Processing", "*_Items in queue:_* **42**")

	l.Info("Styles", "Here are all available styles:")
	l.Info("Bold", "**bold text**")
	l.Info("Italic", "*italic text*")
	l.Info("Underline", "_underlined text_")
	l.Info("Strikethrough", "~strikethrough text~")
	l.Info("Dim", "@dimmed text@")
	l.Info("Combined", "**Bold _and underlined_ text**")
	l.Info("Mixed", "*Italic with **bold** and _underlined_ parts*")
}

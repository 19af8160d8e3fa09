package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jingkaihe/skillet/pkg/adapter"
	"github.com/jingkaihe/skillet/pkg/client"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx := context.Background()

	c, err := client.New()
	if err != nil {
		logrus.WithError(err).Fatal("failed to create skill client")
	}

	binder := adapter.NewBinder(c)
	skillTools, err := binder.RegisterAll(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to register skill tools")
	}

	if len(skillTools) == 0 {
		fmt.Printf("No skills found under %v\n", c.SkillDirs())
		return
	}

	fmt.Printf("Registered %d tool(s):\n", len(skillTools))
	for _, tool := range skillTools {
		fmt.Printf("  %s: %s\n", tool.Name(), tool.Description())
	}

	for _, tool := range skillTools {
		if !strings.HasSuffix(tool.Name(), "_instructions") {
			continue
		}
		out, err := tool.Execute(ctx, "{}")
		if err != nil {
			logrus.WithError(err).Fatal("failed to load skill instructions")
		}
		fmt.Println()
		fmt.Println(out)
		break
	}
}

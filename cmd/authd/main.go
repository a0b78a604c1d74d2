package main

import (
	"context"
	"fmt"
	"os"

	"github.com/authslice/authd/internal/cli"
)

// @title                       authd API
// @version                     1.0
// @description                 Registration, login and role-guarded routes backed by JWT session tokens.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "authd: %v\n", err)
		os.Exit(1)
	}
}

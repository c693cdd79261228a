// Command token mints a bearer token for local testing, signed with the
// same JWT_SECRET the server verifies against.
//
//	token --sub user-1 --email jo@example.com --role ADMIN --ttl 120
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/2ellamills/fitness-class/internal/model"
	"github.com/2ellamills/fitness-class/internal/utils"
)

func main() {
	_ = godotenv.Load()

	sub := flag.StringP("sub", "s", "", "actor id (required)")
	email := flag.StringP("email", "e", "", "actor email")
	role := flag.StringP("role", "r", model.RoleUser, "actor role: USER or ADMIN")
	ttl := flag.IntP("ttl", "t", 60, "lifetime in minutes")
	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "signing secret (defaults to $JWT_SECRET)")
	flag.Parse()

	if *sub == "" || *secret == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *role != model.RoleUser && *role != model.RoleAdmin {
		fmt.Fprintf(os.Stderr, "token: unknown role %q\n", *role)
		os.Exit(2)
	}

	tok, err := utils.NewAccessToken(*secret, model.Actor{ID: *sub, Email: *email, Role: *role}, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok.Token)
}

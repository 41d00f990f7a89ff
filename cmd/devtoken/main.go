// Command devtoken mints a bearer token for local testing against escrowd.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/internal/service"
)

func main() {
	subject := flag.String("subject", "", "caller id carried in the sub claim")
	roles := flag.String("roles", "", "comma-separated roles, e.g. ARBITER")
	secret := flag.String("secret", os.Getenv("ESC_JWT_SECRET"), "HMAC secret shared with escrowd")
	issuer := flag.String("issuer", "mapchain-escrow", "token issuer")
	expiry := flag.Duration("expiry", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *subject == "" || *secret == "" {
		fmt.Fprintln(os.Stderr, "devtoken: -subject and -secret are required")
		flag.Usage()
		os.Exit(2)
	}

	var rs []domain.Role
	for _, r := range strings.Split(*roles, ",") {
		r = strings.TrimSpace(strings.ToUpper(r))
		if r == "" {
			continue
		}
		role := domain.Role(r)
		if !role.Valid() {
			fmt.Fprintf(os.Stderr, "devtoken: unknown role %q\n", r)
			os.Exit(2)
		}
		rs = append(rs, role)
	}

	token, exp, err := service.NewJWTTokenService(*secret, *expiry, *issuer).Generate(*subject, rs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires %s\n", exp.UTC().Format(time.RFC3339))
}

// Package main provides the SoundCloud authorization tool.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/osa030/soundbox/soundcloud"
)

var (
	app          = kingpin.New("soundbox-auth", "SoundCloud authorization tool for soundbox")
	clientID     = app.Flag("client-id", "SoundCloud Client ID").Envar("SOUNDCLOUD_CLIENT_ID").Required().String()
	clientSecret = app.Flag("client-secret", "SoundCloud Client Secret").Envar("SOUNDCLOUD_CLIENT_SECRET").Required().String()
	port         = app.Flag("port", "Callback server port").Default("8080").Int()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	// Build redirect URI with custom port
	redirectURI := fmt.Sprintf("http://127.0.0.1:%d/callback", *port)

	client, err := soundcloud.New(soundcloud.Config{
		ClientID:     *clientID,
		ClientSecret: *clientSecret,
		CallbackURL:  redirectURI,
	})
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	state := uuid.NewString()
	tokenCh := make(chan string)

	http.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		completeAuth(w, r, client, state, tokenCh)
	})

	server := &http.Server{Addr: fmt.Sprintf(":%d", *port)}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	fmt.Println("Please visit the following URL to authorize soundbox:")
	fmt.Println("")
	fmt.Println(client.AuthorizeURL(state))
	fmt.Println("")
	fmt.Println("Waiting for authorization...")

	token := <-tokenCh

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown server: %v", err)
	}

	fmt.Println("")
	fmt.Println("=== Authorization Successful ===")
	fmt.Println("")
	fmt.Println("Access Token:")
	fmt.Println(token)
	fmt.Println("")
	fmt.Println("Set it as an environment variable:")
	fmt.Printf("export SOUNDCLOUD_ACCESS_TOKEN=\"%s\"\n", token)
}

func completeAuth(w http.ResponseWriter, r *http.Request, client *soundcloud.Client, state string, tokenCh chan<- string) {
	if st := r.URL.Query().Get("state"); st != state {
		http.Error(w, "State mismatch", http.StatusForbidden)
		log.Printf("State mismatch: %s != %s", st, state)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusForbidden)
		log.Print("Callback request carried no code parameter")
		return
	}

	client.SetAuthorizationCode(code)
	token, err := client.Token(r.Context())
	if err != nil {
		http.Error(w, "Failed to get token", http.StatusForbidden)
		log.Printf("Failed to get token: %v", err)
		return
	}

	fmt.Fprint(w, `
<!DOCTYPE html>
<html>
<head>
    <title>soundbox - Authorization Complete</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: linear-gradient(135deg, #ff5500 0%, #1a1a1a 100%);
            color: white;
        }
        .container {
            text-align: center;
            padding: 40px;
            background: rgba(0, 0, 0, 0.5);
            border-radius: 16px;
        }
        h1 { margin-bottom: 20px; }
        p { opacity: 0.8; }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#10003; Authorization Complete</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`)

	tokenCh <- token
}

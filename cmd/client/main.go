package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/client/api"
	"github.com/santi-esquerre/departamento-del-agua-api/internal/client/guard"
	"github.com/santi-esquerre/departamento-del-agua-api/internal/client/identidad"
	"github.com/santi-esquerre/departamento-del-agua-api/internal/client/session"
	"github.com/santi-esquerre/departamento-del-agua-api/internal/client/transport"
)

var (
	version   string
	buildDate string
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// app ties the session, the API client and the identity flow to the current
// route. All navigation goes through the guard.
type app struct {
	sess    *session.Store
	api     *api.Client
	flow    *identidad.Flow
	scanner *bufio.Scanner

	route       string
	pendingFrom string
	eof         bool
}

// navigate applies the guard to the requested route and follows its redirect
// decision, remembering the attempted location on a login redirect.
func (a *app) navigate(to string) {
	d := guard.Evaluate(a.sess, to)
	if d.Allow {
		a.route = guard.Resolve(to)
		return
	}
	a.route = d.RedirectTo
	if d.From != "" {
		a.pendingFrom = d.From
	}
}

func (a *app) readLine(prompt string) string {
	fmt.Print(prompt)
	if !a.scanner.Scan() {
		a.eof = true
		return ""
	}
	return strings.TrimSpace(a.scanner.Text())
}

// login prompts for credentials, exchanges them for a token and moves on to
// wherever the user was headed. Bad credentials are reported inline; the
// password is never retained.
func (a *app) login(ctx context.Context) {
	username := a.readLine("Usuario: ")
	fmt.Print("Contraseña: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		fmt.Println("error leyendo contraseña:", err)
		return
	}

	token, err := a.api.Login(ctx, username, string(pw))
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			fmt.Println("Credenciales inválidas")
		} else {
			fmt.Println("error:", err)
		}
		return
	}
	if err := a.sess.SetToken(token); err != nil {
		fmt.Println("error:", err)
		return
	}

	next := a.pendingFrom
	a.pendingFrom = ""
	if next == "" {
		next = guard.RouteDashboard
	}
	a.navigate(next)
}

// identidadView runs the chooser: list, select, create, or back to login.
func (a *app) identidadView(ctx context.Context) {
	if err := a.flow.Load(ctx); err != nil {
		// non-fatal: the list stays empty and the view still renders
		fmt.Println("Error cargando identidades")
	}

	for a.route == guard.RouteIdentidad && !a.eof {
		for i, p := range a.flow.List() {
			fmt.Printf("%d) %s — %s\n", i+1, p.Nombre, p.Cargo)
		}
		cmd := a.readLine("identidad> ")
		args := strings.Fields(cmd)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, select <n>, new, logout, exit")
		case "select":
			if len(args) < 2 {
				fmt.Println("Usage: select <n>")
				continue
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Println("Usage: select <n>")
				continue
			}
			p, err := a.flow.Select(n - 1)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Println("Actuando como", p.Nombre)
			a.navigate(guard.RouteDashboard)
		case "new":
			a.createIdentity(ctx)
		case "logout":
			_ = a.sess.ClearToken()
			_ = a.sess.ClearPersonal()
			a.navigate(guard.RouteDashboard)
		case "exit":
			a.route = ""
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// createIdentity gathers the form fields, uploads photo/CV as requested and
// creates the record. On success the session is completed with it.
func (a *app) createIdentity(ctx context.Context) {
	form := identidad.Form{
		Nombre:      a.readLine("Nombre completo: "),
		Cargo:       a.readLine("Cargo: "),
		Descripcion: a.readLine("Descripción breve: "),
		Email:       a.readLine("Email: "),
		ORCID:       a.readLine("ORCID (opcional): "),
		FechaAlta:   a.readLine("Fecha de alta (YYYY-MM-DD): "),
		FotoPath:    a.readLine("Foto, ruta local (opcional): "),
	}
	switch a.readLine("CV: enlace o archivo? [link/upload]: ") {
	case "upload":
		form.CVOption = identidad.CVUpload
		form.CVPath = a.readLine("CV, ruta local: ")
	default:
		form.CVOption = identidad.CVLink
		form.CVLink = a.readLine("CV, enlace (opcional): ")
	}

	p, err := a.flow.Create(ctx, form)
	if err != nil {
		fmt.Println("Error al crear identidad:", err)
		return
	}
	fmt.Println("Identidad creada:", p.Nombre)
	a.navigate(guard.RouteDashboard)
}

// dashboardView is the protected area: it shows the acting identity and the
// staff list, and handles logout.
func (a *app) dashboardView(ctx context.Context) {
	p := a.sess.Personal()
	if p != nil {
		fmt.Printf("Conectado como %s (%s)\n", p.Nombre, p.Cargo)
	}
	for a.route != "" && a.route != guard.RouteLogin && a.route != guard.RouteIdentidad && !a.eof {
		cmd := a.readLine("agua> ")
		args := strings.Fields(cmd)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, whoami, personal, go <route>, logout, exit")
		case "whoami":
			if p := a.sess.Personal(); p != nil {
				fmt.Printf("%s — %s <%s>\n", p.Nombre, p.Cargo, p.Email)
			}
		case "personal":
			list, err := a.api.FetchPersonales(ctx)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			for _, p := range list {
				fmt.Printf("%d) %s — %s\n", p.ID, p.Nombre, p.Cargo)
			}
		case "go":
			if len(args) < 2 {
				fmt.Println("Usage: go <route>")
				continue
			}
			a.navigate(args[1])
			if a.route == guard.RouteNotFound {
				fmt.Println("404 — vista no encontrada")
				a.navigate(guard.RouteDashboard)
			}
		case "logout":
			_ = a.sess.ClearToken()
			_ = a.sess.ClearPersonal()
			a.navigate(guard.RouteDashboard)
		case "exit":
			fmt.Println("Bye")
			a.route = ""
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// repl drives the route loop: each iteration renders the view the guard
// currently allows.
func (a *app) repl(ctx context.Context) {
	a.navigate(guard.RouteDashboard)
	for a.route != "" && !a.eof {
		switch a.route {
		case guard.RouteLogin:
			a.login(ctx)
		case guard.RouteIdentidad:
			a.identidadView(ctx)
		default:
			a.dashboardView(ctx)
		}
	}
}

func main() {
	var (
		baseURL  string
		stateDir string
		showVer  bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&stateDir, "state", defaultStateDir(), "directory for persisted session state")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("Departamento del Agua Admin\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	sess, err := session.Open(stateDir)
	if err != nil {
		log.Fatal(err)
	}

	a := &app{
		sess:    sess,
		scanner: bufio.NewScanner(os.Stdin),
	}
	// a 401 from any call lands the user back on the login view
	httpClient := transport.NewClient(sess, func() {
		fmt.Println("Sesión expirada, volvé a iniciar sesión")
		a.route = guard.RouteLogin
	})
	a.api = api.New(baseURL, httpClient)
	a.flow = identidad.New(a.api, sess)

	a.repl(context.Background())
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".agua"
	}
	return home + "/.config/departamento-agua"
}

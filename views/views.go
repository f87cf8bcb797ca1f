// Package views renders the site's pages as templ components. The
// components are written by hand on templ.ComponentFunc; markup is
// static and unstyled beyond class hooks.
package views

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

func esc(s string) string { return html.EscapeString(s) }

// page wraps a body writer in the shared document shell.
func page(site Site, title string, body func(b *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b bytes.Buffer
		writeHead(&b, site, title)
		writeNav(&b, site)
		b.WriteString(`<main>`)
		body(&b)
		b.WriteString(`</main>`)
		writeFooter(&b, site)
		b.WriteString(`</body></html>`)
		_, err := w.Write(b.Bytes())
		return err
	})
}

func writeHead(b *bytes.Buffer, site Site, title string) {
	b.WriteString(`<!DOCTYPE html><html lang="pt-BR"><head><meta charset="utf-8"/>`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
	fmt.Fprintf(b, `<title>%s</title>`, esc(title))
	if site.Description != "" {
		fmt.Fprintf(b, `<meta name="description" content="%s"/>`, esc(site.Description))
	}
	b.WriteString(`<link rel="stylesheet" href="/public/styles.css"/>`)
	b.WriteString(`</head><body>`)
}

func writeNav(b *bytes.Buffer, site Site) {
	b.WriteString(`<header class="site-header"><a class="brand" href="/">`)
	b.WriteString(esc(site.Name))
	b.WriteString(`</a><nav>`)
	for _, l := range navLinks {
		fmt.Fprintf(b, `<a href="%s">%s</a>`, esc(l.Href), esc(l.Name))
	}
	b.WriteString(`</nav></header>`)
}

func writeFooter(b *bytes.Buffer, site Site) {
	b.WriteString(`<footer class="site-footer"><div class="socials">`)
	for _, s := range socialLinks {
		fmt.Fprintf(b, `<a href="%s" aria-label="%s">%s</a>`, esc(s.Href), esc(s.Name), esc(s.Initial))
	}
	fmt.Fprintf(b, `</div><p>&copy; %s</p></footer>`, esc(site.Name))
}

// Home is the marketing landing page: hero, services, process and
// contact sections.
func Home(site Site) templ.Component {
	return page(site, site.Name, func(b *bytes.Buffer) {
		b.WriteString(`<section id="hero" class="hero"><h1>`)
		b.WriteString(esc(site.Name))
		b.WriteString(`</h1><p>`)
		b.WriteString(esc(site.Description))
		b.WriteString(`</p><a class="cta" href="#contact">Fale com a gente</a></section>`)

		b.WriteString(`<section id="services" class="services"><h2>Serviços</h2><div class="grid">`)
		for _, s := range services {
			fmt.Fprintf(b, `<article class="card"><h3>%s</h3><p>%s</p></article>`, esc(s.Title), esc(s.Description))
		}
		b.WriteString(`</div></section>`)

		b.WriteString(`<section id="portfolio" class="process"><h2>Processo</h2><ol>`)
		for _, p := range processSteps {
			fmt.Fprintf(b, `<li><span class="step">%d</span><h3>%s</h3><p>%s</p></li>`, p.Number, esc(p.Title), esc(p.Description))
		}
		b.WriteString(`</ol></section>`)

		b.WriteString(`<section id="contact" class="contact"><h2>Contato</h2>`)
		b.WriteString(`<p>Vamos conversar sobre o seu projeto.</p></section>`)
	})
}

// BlogIndex lists posts newest first, optionally filtered by tag.
func BlogIndex(site Site, posts []Post, activeTag string, tags []string) templ.Component {
	return page(site, "Blog — "+site.Name, func(b *bytes.Buffer) {
		b.WriteString(`<section class="blog-index"><h1>Blog</h1><div class="tags">`)
		for _, t := range tags {
			cls := "tag"
			if strings.EqualFold(t, activeTag) {
				cls = "tag active"
			}
			fmt.Fprintf(b, `<a class="%s" href="/blog?tag=%s">%s</a>`, cls, esc(t), esc(t))
		}
		b.WriteString(`</div><ul class="posts">`)
		for _, p := range posts {
			b.WriteString(`<li class="post-card">`)
			if p.Image != "" {
				fmt.Fprintf(b, `<img src="%s" alt=""/>`, esc(p.Image))
			}
			fmt.Fprintf(b, `<a href="/blog/%s"><h2>%s</h2></a>`, esc(p.Slug), esc(p.Title))
			fmt.Fprintf(b, `<p>%s</p><span class="meta">%s · %s</span></li>`, esc(p.Description), esc(p.Date), esc(p.ReadTime))
		}
		b.WriteString(`</ul></section>`)
	})
}

// BlogPost renders a single post; body is the already-sanitized
// markdown component.
func BlogPost(site Site, p Post, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b bytes.Buffer
		writeHead(&b, site, p.Title+" — "+site.Name)
		writeNav(&b, site)
		b.WriteString(`<main><article class="post">`)
		fmt.Fprintf(&b, `<h1>%s</h1><p class="meta">%s · %s</p>`, esc(p.Title), esc(p.Date), esc(p.ReadTime))
		if p.Image != "" {
			fmt.Fprintf(&b, `<img class="cover" src="%s" alt=""/>`, esc(p.Image))
		}
		b.WriteString(`<div class="content">`)
		if _, err := w.Write(b.Bytes()); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		var tail bytes.Buffer
		tail.WriteString(`</div><div class="tags">`)
		for _, t := range p.Tags {
			fmt.Fprintf(&tail, `<a class="tag" href="/blog?tag=%s">%s</a>`, esc(t), esc(t))
		}
		tail.WriteString(`</div></article></main>`)
		writeFooter(&tail, site)
		tail.WriteString(`</body></html>`)
		_, err := tail.WriteTo(w)
		return err
	})
}

// Login asks the visitor to authenticate with the identity provider.
func Login(site Site, callbackURL string) templ.Component {
	return page(site, "Entrar — "+site.Name, func(b *bytes.Buffer) {
		b.WriteString(`<section class="login"><h1>Área restrita</h1>`)
		b.WriteString(`<p>Entre com a sua conta para continuar.</p>`)
		fmt.Fprintf(b, `<a class="cta" href="/auth/signin?callbackUrl=%s">Entrar</a></section>`, esc(callbackURL))
	})
}

// AccessDenied tells an authenticated but unauthorized visitor that the
// area is restricted.
func AccessDenied(site Site) templ.Component {
	return page(site, "Acesso negado — "+site.Name, func(b *bytes.Buffer) {
		b.WriteString(`<section class="access-denied"><h1>Acesso negado</h1>`)
		b.WriteString(`<p>Sua conta não tem permissão para acessar esta área.</p>`)
		b.WriteString(`<a href="/">Voltar ao início</a></section>`)
	})
}

// AdminDashboard lists every post with management links. Enforcement
// lives in the access gate; this page is display only.
func AdminDashboard(site Site, posts []Post, email string) templ.Component {
	return page(site, "Admin — "+site.Name, func(b *bytes.Buffer) {
		fmt.Fprintf(b, `<section class="admin"><h1>Painel</h1><p class="who">%s</p>`, esc(email))
		b.WriteString(`<table class="posts"><thead><tr><th>Título</th><th>Data</th><th>Slug</th></tr></thead><tbody>`)
		for _, p := range posts {
			fmt.Fprintf(b, `<tr><td>%s</td><td>%s</td><td><a href="/blog/%s">%s</a></td></tr>`,
				esc(p.Title), esc(p.Date), esc(p.Slug), esc(p.Slug))
		}
		b.WriteString(`</tbody></table></section>`)
	})
}

// NotFound is the styled 404 page.
func NotFound(site Site) templ.Component {
	return page(site, "Página não encontrada — "+site.Name, func(b *bytes.Buffer) {
		b.WriteString(`<section class="not-found"><h1>404</h1><p>Página não encontrada.</p><a href="/">Voltar ao início</a></section>`)
	})
}

// ServerError is the styled 500 page.
func ServerError(site Site) templ.Component {
	return page(site, "Erro — "+site.Name, func(b *bytes.Buffer) {
		b.WriteString(`<section class="server-error"><h1>Algo deu errado</h1><p>Tente novamente em instantes.</p></section>`)
	})
}

// Package web serves the server-rendered deck page.
//
// The page works without JavaScript: every intent is a plain form POST that
// redirects back to the page. A small inline script only keeps the
// "Create Learning Cards" button's enabled state in sync while typing.
package web

// Package state holds the application context of a gallery session.
//
// A Session is built once at startup and handed to every component that
// needs shared handles: the list templates, the favorites store, the renderer
// with its node registry, the two tab containers, the popup and the floating
// caption. All mutation happens on the Bubble Tea update loop, so the
// session carries no locks.
package state

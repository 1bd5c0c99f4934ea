// Package events provides types and interfaces for an event-driven architecture.
//
// Services emit deck lifecycle events without knowing which handlers will
// process them. The primary components are:
// - DeckEvent: Something that happened to a session's deck
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events

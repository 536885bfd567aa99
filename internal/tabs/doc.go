// Package tabs routes classified input events to gallery actions.
//
// The UI classifies each key press or mouse event once into a Target.
// Controller.Handle looks the target kind up in a dispatch table and
// returns the fetches to issue as Requests. When a fetch returns, the UI
// calls Complete, which renders the list (or fills the popup) and hands back
// image probes; each probe outcome goes through Settle into the barrier of
// its list.
//
// The controller also installs the favorites store hooks that switch the
// favorites tab between its list and the empty message.
package tabs

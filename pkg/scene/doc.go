/*
Package scene is the object core of the editor: scene nodes, their event
actions, resource/clone links and grouped-object layout.

Every node and action lives in a Registry. A clone stores a handle to its
resource; the reverse direction is derived by scanning the registry, so a
destroyed resource can never be reached through a stale pointer.

Groups keep their children stacked vertically and, when their children are
synced, fan structural action edits made on one child out to the others.
Clone groups replay the edits of their resource group. All of this happens
synchronously inside the call that triggered it; re-entrant passes are
refused by scoped guards rather than queued.

Nothing in this package is safe for concurrent use. Callers that share a
project across goroutines serialize access, see package workspace.
*/
package scene

/*
Package domain contains the core value types shared by every layer of tableau.

It defines the vocabulary of the scene editor (entity kinds, interaction channels,
rectangles, colours and the key-value descriptions entities serialize to) without
any behaviour that depends on I/O or persistence.

# Key Entities

  - Kind: The closed enumeration of scene entity kinds (Object, Image, ObjectGroup...).
  - Channel: A pointer interaction category with its own ordered action list.
  - Description: The abstract key-value form every entity saves to and loads from.
  - Document: A persisted project (resources plus scenes).
  - Hooks: Optional callbacks fired on propagation, layout and resource teardown.
*/
package domain

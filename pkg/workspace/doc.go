/*
Package workspace coordinates edits to stored project documents.

A Manager serializes every operation on a document ID with a reference
counted in-process mutex and, optionally, a distributed lock, so that several
editor processes can load, change and save the same project safely.
*/
package workspace

// Package main runs the in-memory mock of the token and moment endpoints
// used by stayreal during development.
//
// On start it issues one session for --device-id (a new random id when
// empty) and prints it as credentials JSON on stdout, ready for
// `stayreal auth set --file -`. Point the client at it with
// STAYREAL_TOKEN_URL=http://127.0.0.1:8080/token and
// STAYREAL_MOMENTS_URL=http://127.0.0.1:8080/api/bereal/moments/last/.
//
// The default listen address is 127.0.0.1:8080.
package main

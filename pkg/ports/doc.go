/*
Package ports defines the driven ports (interfaces) for biomorph hosts.

The core engine is pure and never persists anything. Hosts that keep a
population of genomes around (the HTTP API, the MCP server, the CLI) do so
through these interfaces, so the backend can be swapped without touching the
commands.

# Key Interfaces

  - GenomeStore: Persists genomes under a caller-chosen ID (memory, file or Redis).
*/
package ports

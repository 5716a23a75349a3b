/*
Package dawg implements a Directed Acyclic Word Graph: a minimized trie
that stores a set of words with maximal sharing of common prefixes and
common suffixes.

The graph is built in a single pass over words supplied in strictly
increasing byte order, using bounded working memory. Minimization
happens incrementally while building, so there is no post-processing
step: each node is canonicalized the moment its last child is known.

Every edge is packed into one 32-bit word (letter, end-of-word flag,
end-of-node flag, and a 22-bit child index), and the finished graph is
a flat array of those words. Traversal is index arithmetic only, which
also makes the on-disk form trivial: the file is the edge array with an
8-byte header in front of it. A graph loaded with Load or Open is ready
for queries immediately, with no rebuild work.

To build a graph, create a Builder with New, call Start, Add the words
in order, and call Finish. The resulting Graph is immutable and safe
for concurrent readers. Use Save or Write to persist it, and Load,
LoadBuffer or Open to get it back.
*/
package dawg

/*
Package ftex implements Fox Engine FTEX texture container read/write and
lossless conversion to and from DDS.

An FTEX texture is a main file (64-byte header plus one descriptor per mip
level) and one or more numbered sibling payload files ("name.1.ftexs",
"name.2.ftexs", ...). Every payload file holds the pixel bytes of some mip
levels, each level split into chunks of at most 32767 bytes with a chunk
index block ahead of the chunk bodies. Small mip levels live in low-numbered
payload files, large ones in high-numbered files, and inside a payload file
levels are stored smallest first.

The package focuses on practical workflows: parse a texture and its payload
files, flatten it into a DDS image, and build a texture from a DDS image
with the engine's size tiering and chunk layout. Pixel data is never
decoded; BCn blocks are carried as opaque bytes.
*/
package ftex

package gl

// The vertex stage applies the camera transform:
//
//	clip = ((x + posX) / resX * 2, (y + posY) / resY * 2, -z / 1000)
//
// with uView = (resX, resY, posX, posY).
//
const vertexShader = `#version 120
attribute vec3 aPos;
attribute vec4 aCol;
attribute vec2 aTex;

uniform vec4 uView;

varying vec4 vCol;
varying vec2 vTex;

void main()
{
	gl_Position = vec4((aPos.x + uView.z) / uView.x * 2.0,
	                   (aPos.y + uView.w) / uView.y * 2.0,
	                   -aPos.z / 1000.0, 1.0);
	vCol = aCol;
	vTex = aTex;
}
`

const fragmentShader = `#version 120
varying vec4 vCol;
varying vec2 vTex;

uniform sampler2D uSampler;

void main()
{
	gl_FragColor = vCol * texture2D(uSampler, vTex);
}
`

package primitives

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	// shade() is shared by both fragment shaders: one point light with a smooth range
	// cutoff, ambient, and Blinn-Phong specular.
	litCommon = `
uniform vec3 viewPos;
uniform vec3 lightPos;
uniform float lightRange;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
vec3 shade(vec3 albedo, vec3 pos, vec3 normal) {
  vec3 N = normalize(normal);
  vec3 toLight = lightPos - pos;
  float dist = length(toLight);
  vec3 L = toLight / max(dist, 0.0001);
  vec3 V = normalize(viewPos - pos);
  float f = clamp(1.0 - pow(dist / max(lightRange, 0.0001), 4.0), 0.0, 1.0);
  float atten = f * f;
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = albedo * NdotL * lightColor * lightIntensity * atten;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength * atten;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  return ambient.rgb * albedo + diffuse + specular;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
out vec4 finalColor;
` + litCommon + `
void main() {
  finalColor = vec4(shade(colDiffuse.rgb, fragPosition, fragNormal), colDiffuse.a);
}
`
	litTexturedFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform sampler2D texture0;
out vec4 finalColor;
` + litCommon + `
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  finalColor = vec4(shade(tint.rgb, fragPosition, fragNormal), tint.a);
}
`
)

// defaultAmbient is the ambient term (dim so shadowed areas aren't pure black).
var defaultAmbient = [4]float32{0.2, 0.22, 0.26, 1.0}

// defaultLightColor is a soft warm-white.
var defaultLightColor = [3]float32{1.0, 0.98, 0.95}

// defaultLightIntensity scales the diffuse term for a light of referenceLumens.
const defaultLightIntensity = float32(0.9)

// defaultSpecularPower controls highlight tightness (higher = smaller, sharper highlight).
const defaultSpecularPower = float32(48.0)

// defaultSpecularStrength scales specular contribution (0–1).
const defaultSpecularStrength = float32(0.35)

// litLocations are the uniform locations of one lit shader, resolved once after loading.
// A location of -1 means the uniform was optimized out.
type litLocations struct {
	viewPos, lightPos, lightColor, ambient int32
	lightRange, lightIntensity           int32
	specularPower, specularStrength      int32
}

func resolveLitLocations(shader rl.Shader) litLocations {
	return litLocations{
		viewPos:          rl.GetShaderLocation(shader, "viewPos"),
		lightPos:         rl.GetShaderLocation(shader, "lightPos"),
		lightColor:       rl.GetShaderLocation(shader, "lightColor"),
		ambient:          rl.GetShaderLocation(shader, "ambient"),
		lightRange:       rl.GetShaderLocation(shader, "lightRange"),
		lightIntensity:   rl.GetShaderLocation(shader, "lightIntensity"),
		specularPower:    rl.GetShaderLocation(shader, "specularPower"),
		specularStrength: rl.GetShaderLocation(shader, "specularStrength"),
	}
}

// uniformScratch holds the values uploaded each draw so no per-draw slices are allocated.
type uniformScratch struct {
	ambient    [4]float32
	lightColor [3]float32
	scalar     [1]float32
}

func (r *Registry) setVec3(shader rl.Shader, loc int32, v *[3]float32) {
	if loc >= 0 {
		rl.SetShaderValueV(shader, loc, v[:], rl.ShaderUniformVec3, 1)
	}
}

func (r *Registry) setFloat(shader rl.Shader, loc int32, v float32) {
	if loc >= 0 {
		r.scratch.scalar[0] = v
		rl.SetShaderValue(shader, loc, r.scratch.scalar[:], rl.ShaderUniformFloat)
	}
}

// setLitShaderUniforms uploads view and light state to shader using its cached locations.
func (r *Registry) setLitShaderUniforms(shader rl.Shader, locs *litLocations) {
	if !rl.IsShaderValid(shader) {
		return
	}
	r.setVec3(shader, locs.viewPos, &r.viewPos)
	r.setVec3(shader, locs.lightPos, &r.lightPos)
	r.setVec3(shader, locs.lightColor, &r.scratch.lightColor)
	if locs.ambient >= 0 {
		rl.SetShaderValueV(shader, locs.ambient, r.scratch.ambient[:], rl.ShaderUniformVec4, 1)
	}
	r.setFloat(shader, locs.lightRange, r.lightRange)
	r.setFloat(shader, locs.lightIntensity, r.lightIntensity)
	r.setFloat(shader, locs.specularPower, defaultSpecularPower)
	r.setFloat(shader, locs.specularStrength, defaultSpecularStrength)
}

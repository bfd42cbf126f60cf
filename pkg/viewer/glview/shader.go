package glview

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

const vertexShaderSource = `
#version 330 core

layout (location = 0) in vec3 position;
layout (location = 1) in vec3 color;
layout (location = 2) in vec2 uv;
layout (location = 3) in vec3 normal;

uniform mat4 transformationMatrix;
uniform mat4 model;

out vec3 fragColor;
out vec2 fragUV;
out vec3 fragNormal;
out vec3 fragPos;

void main() {
	gl_Position = transformationMatrix * vec4(position, 1.0);
	fragPos = vec3(model * vec4(position, 1.0));
	fragNormal = mat3(transpose(inverse(model))) * normal;
	fragColor = color;
	fragUV = uv;
}
`

const fragmentShaderSource = `
#version 330 core

struct Material {
	vec3 diffuse;
	vec3 specular;
	float shininess;
};

struct DirLight {
	vec3 direction;
	vec3 ambient;
	vec3 diffuse;
	vec3 specular;
};

struct PointLight {
	vec3 position;
	vec3 ambient;
	vec3 diffuse;
	vec3 specular;
	float constant;
	float linear;
	float quadratic;
};

struct SpotLight {
	vec3 position;
	vec3 direction;
	vec3 ambient;
	vec3 diffuse;
	vec3 specular;
	float cutOff;
	float outerCutOff;
	float constant;
	float linear;
	float quadratic;
};

in vec3 fragColor;
in vec2 fragUV;
in vec3 fragNormal;
in vec3 fragPos;

uniform sampler2D tex;
uniform vec3 camPosition;
uniform Material mat;
uniform DirLight dLight;
uniform PointLight pLight;
uniform SpotLight spotLight;

out vec4 outColor;

vec3 phong(vec3 lightDir, vec3 normal, vec3 viewDir, vec3 base,
           vec3 ambient, vec3 diffuse, vec3 specular, float intensity, float att) {
	float diff = max(dot(normal, lightDir), 0.0);
	float spec = pow(max(dot(viewDir, reflect(-lightDir, normal)), 0.0), mat.shininess);
	vec3 a = ambient * base;
	vec3 d = diffuse * diff * base * intensity;
	vec3 s = specular * spec * mat.specular * intensity;
	return (a + d + s) * att;
}

float attenuation(float distance, float c, float l, float q) {
	return 1.0 / (c + l * distance + q * distance * distance);
}

void main() {
	vec3 base = texture(tex, fragUV).rgb * fragColor + mat.diffuse;
	vec3 normal = normalize(fragNormal);
	vec3 viewDir = normalize(camPosition - fragPos);

	vec3 result = phong(normalize(-dLight.direction), normal, viewDir, base,
		dLight.ambient, dLight.diffuse, dLight.specular, 1.0, 1.0);

	vec3 toPoint = pLight.position - fragPos;
	result += phong(normalize(toPoint), normal, viewDir, base,
		pLight.ambient, pLight.diffuse, pLight.specular, 1.0,
		attenuation(length(toPoint), pLight.constant, pLight.linear, pLight.quadratic));

	vec3 toSpot = spotLight.position - fragPos;
	vec3 spotDir = normalize(toSpot);
	float theta = dot(spotDir, normalize(-spotLight.direction));
	float intensity = clamp((theta - spotLight.outerCutOff) / (spotLight.cutOff - spotLight.outerCutOff), 0.0, 1.0);
	result += phong(spotDir, normal, viewDir, base,
		spotLight.ambient, spotLight.diffuse, spotLight.specular, intensity,
		attenuation(length(toSpot), spotLight.constant, spotLight.linear, spotLight.quadratic));

	outColor = vec4(clamp(result, 0.0, 1.0), 1.0);
}
`

// createShaderProgram compiles and links a shader program from source
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		gl.DeleteProgram(program)
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)

		return 0, fmt.Errorf("shader program linking failed: %v", log)
	}

	// Linked programs keep their own copy
	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

// compileShader compiles a shader from source
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		gl.DeleteShader(shader)

		return 0, fmt.Errorf("shader compilation failed: %v", log)
	}

	return shader, nil
}
